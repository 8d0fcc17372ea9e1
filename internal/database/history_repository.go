package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// HistoryRepository handles database operations for review history
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new repository instance
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append inserts one review event inside the review transaction.
// An ID is assigned if the entry doesn't carry one.
func (r *HistoryRepository) Append(ctx context.Context, tx *sqlx.Tx, entry *models.ReviewHistory) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO review_history (
			id, user_id, card_id, quality, correct,
			ease_before, ease_after, interval_before, interval_after,
			latency_seconds, reviewed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.CardID,
		entry.Quality,
		entry.Correct,
		entry.EaseBefore,
		entry.EaseAfter,
		entry.IntervalBefore,
		entry.IntervalAfter,
		entry.LatencySeconds,
		entry.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append review history: %v", err)
	}
	return nil
}

// RecentByCard returns the most recent review events for a card, newest first
func (r *HistoryRepository) RecentByCard(ctx context.Context, userID, cardID int64, limit int) ([]models.ReviewHistory, error) {
	var entries []models.ReviewHistory
	query := `
		SELECT * FROM review_history
		WHERE user_id = $1 AND card_id = $2
		ORDER BY reviewed_at DESC
		LIMIT $3
	`
	if err := r.db.SelectContext(ctx, &entries, query, userID, cardID, limit); err != nil {
		return nil, fmt.Errorf("failed to get review history: %v", err)
	}
	return entries, nil
}

// CountByUser returns the total number of recorded reviews for a user
func (r *HistoryRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM review_history WHERE user_id = $1", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count review history: %v", err)
	}
	return count, nil
}
