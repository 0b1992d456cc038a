package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindwell/internal/common"
	"github.com/dmitrijs2005/mindwell/internal/dbx"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
	"github.com/dmitrijs2005/mindwell/internal/server/repositories/repomanager"
)

// SentimentInput is an unvalidated journal entry as received from a client.
// Confidence is a pointer so that a missing value can be told apart from 0.
type SentimentInput struct {
	Date       string
	Sentiment  string
	Confidence *float64
}

// JournalService maintains the append-only sentiment journal of each user.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewJournalService(db *sql.DB, m repomanager.RepositoryManager) *JournalService {
	return &JournalService{db: db, repomanager: m}
}

// AppendSentiment validates in, appends it to the user's journal and returns
// the user with the full journal. The existence check, insert and reload run
// in one transaction. Unknown users yield common.ErrorNotFound.
func (s *JournalService) AppendSentiment(ctx context.Context, userID string, in SentimentInput) (*models.User, error) {
	entry, err := in.validate()
	if err != nil {
		return nil, err
	}
	if !isUUID(userID) {
		return nil, common.ErrorNotFound
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		usersRepo := s.repomanager.Users(tx)
		journal := s.repomanager.Sentiments(tx)

		if err := usersRepo.Touch(ctx, userID); err != nil {
			return err
		}
		if err := journal.Append(ctx, userID, entry); err != nil {
			return fmt.Errorf("error appending sentiment: %w", err)
		}

		u, err := usersRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		entries, err := journal.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("error loading journal: %w", err)
		}
		u.Sentiments = entries
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return user, nil
}

// ConfidenceSeries returns the confidence values of the user's journal in
// insertion order, without any aggregation.
func (s *JournalService) ConfidenceSeries(ctx context.Context, userID string) ([]float64, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	series, err := s.repomanager.Sentiments(s.db).Confidences(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading confidences: %w", err)
	}
	return series, nil
}

// Entries returns the user's journal in insertion order.
func (s *JournalService) Entries(ctx context.Context, userID string) ([]models.SentimentEntry, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.repomanager.Sentiments(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading journal: %w", err)
	}
	return entries, nil
}

func (s *JournalService) ensureUser(ctx context.Context, userID string) error {
	if !isUUID(userID) {
		return common.ErrorNotFound
	}
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error searching user: %w", err)
	}
	return nil
}

func (in SentimentInput) validate() (models.SentimentEntry, error) {
	label := strings.TrimSpace(in.Sentiment)
	if strings.TrimSpace(in.Date) == "" || label == "" || in.Confidence == nil {
		return models.SentimentEntry{}, common.NewValidationError("date, sentiment and confidence are required")
	}
	if math.IsNaN(*in.Confidence) || math.IsInf(*in.Confidence, 0) {
		return models.SentimentEntry{}, common.NewValidationError("confidence must be a finite number")
	}
	date, err := ParseEntryDate(in.Date)
	if err != nil {
		return models.SentimentEntry{}, common.NewValidationError("invalid date")
	}
	return models.SentimentEntry{Date: date, Sentiment: label, Confidence: *in.Confidence}, nil
}

// ParseEntryDate accepts "2006-01-02" or an RFC 3339 timestamp and returns
// the calendar date at midnight UTC. Timestamps are converted to UTC first.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(models.DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
