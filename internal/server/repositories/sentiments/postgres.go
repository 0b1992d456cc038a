// Package sentiments provides the PostgreSQL-backed sentiment journal. Each
// entry is its own row; the BIGSERIAL id defines insertion order.
package sentiments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mindwell/internal/dbx"
	"github.com/dmitrijs2005/mindwell/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, userID string, entry models.SentimentEntry) error {
	query :=
		`INSERT INTO daily_sentiments (user_id, entry_date, sentiment, confidence)
		 VALUES ($1, $2, $3, $4)
		 `
	if _, err := r.db.ExecContext(ctx, query, userID, entry.Date, entry.Sentiment, entry.Confidence); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.SentimentEntry, error) {
	query :=
		`SELECT entry_date, sentiment, confidence FROM daily_sentiments
		 WHERE user_id = $1
		 ORDER BY id
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.SentimentEntry, 0)
	for rows.Next() {
		var item models.SentimentEntry
		if err := rows.Scan(&item.Date, &item.Sentiment, &item.Confidence); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Confidences(ctx context.Context, userID string) ([]float64, error) {
	query :=
		`SELECT confidence FROM daily_sentiments
		 WHERE user_id = $1
		 ORDER BY id
		 `
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]float64, 0)
	for rows.Next() {
		var c float64
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}
