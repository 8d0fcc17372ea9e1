package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// StreakRepository handles database operations for study streaks
type StreakRepository struct {
	db *DB
}

// NewStreakRepository creates a new repository instance
func NewStreakRepository(db *DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// Get returns the user's streak row, or a zero-valued streak if the user
// has never studied.
func (r *StreakRepository) Get(ctx context.Context, q sqlx.QueryerContext, userID int64) (*models.StudyStreak, error) {
	var streak models.StudyStreak
	err := sqlx.GetContext(ctx, q, &streak,
		"SELECT * FROM study_streaks WHERE user_id = $1", userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.StudyStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get study streak: %v", err)
	}
	return &streak, nil
}

// Upsert writes the user's streak row inside the review transaction
func (r *StreakRepository) Upsert(ctx context.Context, tx *sqlx.Tx, streak *models.StudyStreak, now time.Time) error {
	query := `
		INSERT INTO study_streaks (
			user_id, current_streak, longest_streak, last_study_date, updated_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			last_study_date = excluded.last_study_date,
			updated_at = excluded.updated_at
	`
	_, err := tx.ExecContext(ctx, query,
		streak.UserID,
		streak.CurrentStreak,
		streak.LongestStreak,
		streak.LastStudyDate,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert study streak: %v", err)
	}
	return nil
}
