package sentiments

import (
	"context"

	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, userID string, entry models.SentimentEntry) error
	ListByUser(ctx context.Context, userID string) ([]models.SentimentEntry, error)
	Confidences(ctx context.Context, userID string) ([]float64, error)
}
