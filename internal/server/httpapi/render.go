package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
}

type sentimentJSON struct {
	Date       string  `json:"date"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// userJSON is the public shape of a user. It has no password field.
type userJSON struct {
	ID              string          `json:"id"`
	FullName        string          `json:"fullname"`
	Email           string          `json:"email"`
	ProfilePic      string          `json:"profilePic"`
	DailySentiments []sentimentJSON `json:"dailySentiments"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type userRefJSON struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

type userSummaryJSON struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
}

func toSentimentsJSON(entries []models.SentimentEntry) []sentimentJSON {
	out := make([]sentimentJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, sentimentJSON{
			Date:       e.Date.UTC().Format(models.DateLayout),
			Sentiment:  e.Sentiment,
			Confidence: e.Confidence,
		})
	}
	return out
}

func toUserJSON(u *models.User, profilePicURL string) userJSON {
	return userJSON{
		ID:              u.ID,
		FullName:        u.FullName,
		Email:           u.Email,
		ProfilePic:      profilePicURL,
		DailySentiments: toSentimentsJSON(u.Sentiments),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func renderJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func renderMessage(w http.ResponseWriter, code int, msg string) {
	renderJSON(w, code, messageResponse{Message: msg})
}

// decodeJSON reads a single JSON object from the body into dst. An empty body
// leaves dst untouched, as if "{}" had been sent, so field validation reports
// what is missing.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data")
	}
	return nil
}

// renderError maps service errors to status codes. Anything unexpected is
// logged and reported as a bare 500.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		renderMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrAlreadyExists):
		renderMessage(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		renderMessage(w, http.StatusBadRequest, "Invalid Credentials")
	case errors.Is(err, common.ErrorNotFound):
		renderMessage(w, http.StatusNotFound, "User not found")
	default:
		h.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err.Error())
		renderMessage(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
