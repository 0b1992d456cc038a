package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/mindwell/internal/server/services"
	"github.com/gorilla/mux"
)

type sentimentRequest struct {
	Date       string   `json:"date"`
	Sentiment  string   `json:"sentiment"`
	Confidence *float64 `json:"confidence"`
}

type sentimentResponse struct {
	Message string   `json:"message"`
	User    userJSON `json:"user"`
}

type profilePicResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Users.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	out := make([]userSummaryJSON, 0, len(list))
	for _, u := range list {
		out = append(out, userSummaryJSON{ID: u.ID, FullName: u.FullName})
	}
	renderJSON(w, http.StatusOK, out)
}

func (h *Handlers) Confidence(w http.ResponseWriter, r *http.Request) {
	series, err := h.Journal.ConfidenceSeries(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if series == nil {
		series = []float64{}
	}
	renderJSON(w, http.StatusOK, series)
}

func (h *Handlers) AppendSentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Journal.AppendSentiment(r.Context(), mux.Vars(r)["userId"], services.SentimentInput{
		Date:       req.Date,
		Sentiment:  req.Sentiment,
		Confidence: req.Confidence,
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	renderJSON(w, http.StatusOK, sentimentResponse{
		Message: "Sentiment updated successfully",
		User:    toUserJSON(u, h.profilePicURL(r, u)),
	})
}

func (h *Handlers) ProfilePic(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		renderMessage(w, http.StatusUnauthorized, msgUserNotFound)
		return
	}

	key, url, err := h.Avatars.PresignUpload(r.Context(), u.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, profilePicResponse{UploadURL: url, Key: key})
}
