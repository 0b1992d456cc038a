package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/server/auth"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

const (
	msgNoToken      = "Unauthorized - No Token Provided"
	msgInvalidToken = "Unauthorized - Invalid Token"
	msgUserNotFound = "Unauthorized - User Not Found"
)

type ctxKey int

const (
	userKey ctxKey = iota
	requestIDKey
)

// UserFromContext returns the user attached by the session guard.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok && u != nil
}

// requireSession lets the request through only with a valid session cookie
// that names an existing user.
func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := auth.TokenFromRequest(r)
		if token == "" {
			renderMessage(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.SecretKey)
		if err != nil {
			renderMessage(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		u, err := h.Users.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				renderMessage(w, http.StatusUnauthorized, msgUserNotFound)
				return
			}
			h.renderError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}
