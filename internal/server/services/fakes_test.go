package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/dbx"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/sentiments"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/users"
	"github.com/google/uuid"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo is an in-memory users.Repository.
type fakeUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	order   []string
	failErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	f.order = append(f.order, c.ID)
	out := c
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsersRepo) List(context.Context) ([]models.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return nil, f.failErr
	}
	out := make([]models.UserSummary, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, models.UserSummary{ID: id, FullName: f.byID[id].FullName})
	}
	return out, nil
}

func (f *fakeUsersRepo) SetProfilePic(_ context.Context, id string, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.ProfilePic = key
	return nil
}

func (f *fakeUsersRepo) Touch(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.UpdatedAt = time.Now()
	return nil
}

// fakeSentimentsRepo is an in-memory sentiments.Repository.
type fakeSentimentsRepo struct {
	mu        sync.Mutex
	entries   map[string][]models.SentimentEntry
	appendErr error
}

func newFakeSentimentsRepo() *fakeSentimentsRepo {
	return &fakeSentimentsRepo{entries: map[string][]models.SentimentEntry{}}
}

func (f *fakeSentimentsRepo) Append(_ context.Context, userID string, e models.SentimentEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries[userID] = append(f.entries[userID], e)
	return nil
}

func (f *fakeSentimentsRepo) ListByUser(_ context.Context, userID string) ([]models.SentimentEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SentimentEntry{}, f.entries[userID]...), nil
}

func (f *fakeSentimentsRepo) Confidences(_ context.Context, userID string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, 0, len(f.entries[userID]))
	for _, e := range f.entries[userID] {
		out = append(out, e.Confidence)
	}
	return out, nil
}

type fakeRepoManager struct {
	users      *fakeUsersRepo
	sentiments *fakeSentimentsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), sentiments: newFakeSentimentsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *fakeRepoManager) Sentiments(dbx.DBTX) sentiments.Repository { return m.sentiments }
