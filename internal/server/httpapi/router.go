// Package httpapi exposes the MindWell REST API under /api/auth: account
// signup and login, the session guard, the sentiment journal and profile
// picture uploads. Handlers depend on small service interfaces so they can be
// tested without a database.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mindwell/internal/logging"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/services"
	"github.com/gorilla/mux"
)

// BasePath prefixes every route.
const BasePath = "/api/auth"

type UserService interface {
	Signup(ctx context.Context, fullName, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
}

type JournalService interface {
	AppendSentiment(ctx context.Context, userID string, in services.SentimentInput) (*models.User, error)
	ConfidenceSeries(ctx context.Context, userID string) ([]float64, error)
	Entries(ctx context.Context, userID string) ([]models.SentimentEntry, error)
}

type AvatarService interface {
	PresignUpload(ctx context.Context, userID string) (key string, url string, err error)
	URL(ctx context.Context, key string) (string, error)
}

// Deps is everything the router needs.
type Deps struct {
	Users   UserService
	Journal JournalService
	Avatars AvatarService
	Logger  logging.Logger

	SecretKey       []byte
	SessionValidity time.Duration
	SecureCookies   bool
	AllowedOrigins  []string

	// ProtectSentimentAppend puts POST /users/{userId}/sentiment behind the session guard.
	ProtectSentimentAppend bool
}

type Handlers struct {
	Deps
	logger logging.Logger
}

// NewRouter wires routes and the middleware chain:
// recover → request id → request logging → CORS → routes.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	h := &Handlers{Deps: d, logger: d.Logger.With("module", "httpapi")}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderMessage(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		renderMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	api := router.PathPrefix(BasePath).Subrouter()
	api.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)
	api.Handle("/check", h.requireSession(http.HandlerFunc(h.Check))).Methods(http.MethodGet)
	api.Handle("/users", h.requireSession(http.HandlerFunc(h.ListUsers))).Methods(http.MethodGet)
	api.Handle("/users/{userId}/confidence", h.requireSession(http.HandlerFunc(h.Confidence))).Methods(http.MethodGet)
	api.Handle("/profile-pic", h.requireSession(http.HandlerFunc(h.ProfilePic))).Methods(http.MethodPost)

	var appendSentiment http.Handler = http.HandlerFunc(h.AppendSentiment)
	if d.ProtectSentimentAppend {
		appendSentiment = h.requireSession(appendSentiment)
	}
	api.Handle("/users/{userId}/sentiment", appendSentiment).Methods(http.MethodPost)

	return Chain(router,
		Recover(h.logger),
		RequestID,
		RequestLogger(h.logger),
		CORS(d.AllowedOrigins),
	)
}
