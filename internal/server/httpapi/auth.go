package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/mindwell/internal/server/auth"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

type signupRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Message string      `json:"message"`
	User    userRefJSON `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message    string `json:"message"`
	ID         string `json:"id"`
	FullName   string `json:"fullname"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Users.Signup(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.issueSession(w, u.ID); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "user_id", u.ID)
	renderJSON(w, http.StatusCreated, signupResponse{
		Message: "user created successfully",
		User:    userRefJSON{ID: u.ID, FullName: u.FullName, Email: u.Email},
	})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.issueSession(w, u.ID); err != nil {
		h.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, loginResponse{
		Message:    "Logged in successfully",
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		ProfilePic: h.profilePicURL(r, u),
	})
}

// Logout only clears the cookie. Tokens already handed out stay valid until
// they expire.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, h.SecureCookies)
	renderMessage(w, http.StatusOK, "Logged out successfully")
}

// Check returns the signed-in user together with the journal.
func (h *Handlers) Check(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		renderMessage(w, http.StatusUnauthorized, msgUserNotFound)
		return
	}

	entries, err := h.Journal.Entries(r.Context(), u.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	withJournal := *u
	withJournal.Sentiments = entries

	renderJSON(w, http.StatusOK, toUserJSON(&withJournal, h.profilePicURL(r, u)))
}

func (h *Handlers) issueSession(w http.ResponseWriter, userID string) error {
	token, err := auth.GenerateToken(userID, h.SecretKey, h.SessionValidity)
	if err != nil {
		return err
	}
	auth.SetSessionCookie(w, token, h.SessionValidity, h.SecureCookies)
	return nil
}

// profilePicURL presigns the stored key. A presigning failure is logged and
// degrades to no picture.
func (h *Handlers) profilePicURL(r *http.Request, u *models.User) string {
	if u.ProfilePic == "" || h.Avatars == nil {
		return ""
	}
	url, err := h.Avatars.URL(r.Context(), u.ProfilePic)
	if err != nil {
		h.logger.Warn(r.Context(), "profile picture presign failed", "user_id", u.ID, "error", err.Error())
		return ""
	}
	return url
}
