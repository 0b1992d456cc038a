package httpapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/services"
	"github.com/google/uuid"
)

const fakeHash = "$2a$10$abcdefghijklmnopqrstuuABCDEFGHIJKLMNOPQRSTUVWXYZ0123"

type fakeUsers struct {
	mu        sync.Mutex
	byID      map[string]*models.User
	passwords map[string]string
	order     []string
	err       error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}, passwords: map[string]string{}}
}

func (f *fakeUsers) Signup(_ context.Context, fullName, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if fullName == "" || email == "" || password == "" {
		return nil, common.NewValidationError("All fields are required")
	}
	if len(password) < services.MinPasswordLength {
		return nil, common.NewValidationError("password must be at least 6 characters")
	}
	for _, u := range f.byID {
		if u.Email == email {
			return nil, common.ErrAlreadyExists
		}
	}
	u := &models.User{
		ID: uuid.NewString(), FullName: fullName, Email: email, PasswordHash: fakeHash,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	f.byID[u.ID] = u
	f.passwords[u.ID] = password
	f.order = append(f.order, u.ID)
	c := *u
	return &c, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if email == "" || password == "" {
		return nil, common.NewValidationError("All fields are required")
	}
	for _, u := range f.byID {
		if u.Email == email {
			if f.passwords[u.ID] != password {
				return nil, common.ErrInvalidCredentials
			}
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.UserSummary, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, models.UserSummary{ID: id, FullName: f.byID[id].FullName})
	}
	return out, nil
}

func (f *fakeUsers) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

type fakeJournal struct {
	users   *fakeUsers
	mu      sync.Mutex
	entries map[string][]models.SentimentEntry
}

func newFakeJournal(u *fakeUsers) *fakeJournal {
	return &fakeJournal{users: u, entries: map[string][]models.SentimentEntry{}}
}

func (f *fakeJournal) AppendSentiment(ctx context.Context, userID string, in services.SentimentInput) (*models.User, error) {
	if in.Date == "" || in.Sentiment == "" || in.Confidence == nil {
		return nil, common.NewValidationError("date, sentiment and confidence are required")
	}
	d, err := services.ParseEntryDate(in.Date)
	if err != nil {
		return nil, common.NewValidationError("invalid date")
	}
	u, err := f.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[userID] = append(f.entries[userID], models.SentimentEntry{Date: d, Sentiment: in.Sentiment, Confidence: *in.Confidence})
	u.Sentiments = append([]models.SentimentEntry{}, f.entries[userID]...)
	return u, nil
}

func (f *fakeJournal) ConfidenceSeries(ctx context.Context, userID string) ([]float64, error) {
	if _, err := f.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, 0)
	for _, e := range f.entries[userID] {
		out = append(out, e.Confidence)
	}
	return out, nil
}

func (f *fakeJournal) Entries(ctx context.Context, userID string) ([]models.SentimentEntry, error) {
	if _, err := f.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SentimentEntry{}, f.entries[userID]...), nil
}

type fakeAvatars struct {
	users  *fakeUsers
	urlErr error
}

func (f *fakeAvatars) PresignUpload(ctx context.Context, userID string) (string, string, error) {
	if _, err := f.users.FindByID(ctx, userID); err != nil {
		return "", "", err
	}
	key := "avatars/" + userID + "/pic"
	f.users.mu.Lock()
	f.users.byID[userID].ProfilePic = key
	f.users.mu.Unlock()
	return key, "https://s3.local/put/" + key, nil
}

func (f *fakeAvatars) URL(_ context.Context, key string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	if key == "" {
		return "", nil
	}
	return "https://s3.local/get/" + key, nil
}

var errBoom = errors.New("connection refused: secret-db-host")
