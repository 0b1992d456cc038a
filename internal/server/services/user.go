// Package services contains server-side business logic. This file implements
// UserService: signup, login and user lookups on top of the credential store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/server/config"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/mcnijman/go-emailaddress"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at signup, counted in
// characters rather than bytes.
const MinPasswordLength = 6

// UserService provides account operations:
// - Signup: validate, hash and persist a new user
// - Login: verify credentials
// - FindByID / FindByEmail / ListUsers: lookups for the session guard and the admin view
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	bcryptCost  int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{db: db, repomanager: m, bcryptCost: cost}
}

// Signup validates the input, hashes the password and stores the user.
// Validation failures are *common.ValidationError; an email that is already
// registered yields common.ErrAlreadyExists.
func (s *UserService) Signup(ctx context.Context, fullName, email, password string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)

	if fullName == "" || email == "" || password == "" {
		return nil, common.NewValidationError("All fields are required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, common.NewValidationError("password must be at least %d characters", MinPasswordLength)
	}
	if _, err := emailaddress.Parse(email); err != nil {
		return nil, common.NewValidationError("invalid email address")
	}

	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewValidationError("password must be at most 72 bytes")
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	u, err := repo.Create(ctx, &models.User{FullName: fullName, Email: email, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login returns the user when email and password match. Unknown emails and
// wrong passwords both yield common.ErrInvalidCredentials, and both pay for a
// bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("All fields are required")
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// FindByEmail looks a user up by (normalized) email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// FindByID looks a user up by id. Ids that are not UUIDs cannot exist and
// yield common.ErrorNotFound without a query.
func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	if !isUUID(id) {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// ListUsers returns the id and name of every user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	list, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// dummyHash is compared against when the email is unknown so that the
// response time does not reveal whether an account exists.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("mindwell-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})
