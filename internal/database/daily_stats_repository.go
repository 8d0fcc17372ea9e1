package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// DailyStatsRepository handles database operations for per-day aggregates
type DailyStatsRepository struct {
	db *DB
}

// NewDailyStatsRepository creates a new repository instance
func NewDailyStatsRepository(db *DB) *DailyStatsRepository {
	return &DailyStatsRepository{db: db}
}

// StatsDelta carries the increments one review contributes to the day's row
type StatsDelta struct {
	CardsReviewed  int
	CardsLearned   int
	CorrectAnswers int
	TotalAnswers   int
	StudyMinutes   int
}

// Apply upserts the (user, day) row in a single conditional write, so two
// concurrent reviews both land their increments instead of one overwriting
// the other. ON CONFLICT DO UPDATE works identically on SQLite and Postgres.
func (r *DailyStatsRepository) Apply(ctx context.Context, tx *sqlx.Tx, userID int64, day string, delta StatsDelta, now time.Time) error {
	query := `
		INSERT INTO daily_stats (
			user_id, stat_date, cards_reviewed, cards_learned,
			correct_answers, total_answers, study_minutes, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, stat_date) DO UPDATE SET
			cards_reviewed = daily_stats.cards_reviewed + excluded.cards_reviewed,
			cards_learned = daily_stats.cards_learned + excluded.cards_learned,
			correct_answers = daily_stats.correct_answers + excluded.correct_answers,
			total_answers = daily_stats.total_answers + excluded.total_answers,
			study_minutes = daily_stats.study_minutes + excluded.study_minutes,
			updated_at = excluded.updated_at
	`
	_, err := tx.ExecContext(ctx, query,
		userID,
		day,
		delta.CardsReviewed,
		delta.CardsLearned,
		delta.CorrectAnswers,
		delta.TotalAnswers,
		delta.StudyMinutes,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert daily stats: %v", err)
	}
	return nil
}

// Get returns the aggregate row for one user and day.
// Callers translate sql.ErrNoRows into their own not-found handling.
func (r *DailyStatsRepository) Get(ctx context.Context, userID int64, day string) (*models.DailyStats, error) {
	var stats models.DailyStats
	err := r.db.GetContext(ctx, &stats,
		"SELECT * FROM daily_stats WHERE user_id = $1 AND stat_date = $2", userID, day)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetRange returns a user's aggregates between two days inclusive,
// oldest first, for history charts
func (r *DailyStatsRepository) GetRange(ctx context.Context, userID int64, fromDay, toDay string) ([]models.DailyStats, error) {
	var stats []models.DailyStats
	query := `
		SELECT * FROM daily_stats
		WHERE user_id = $1 AND stat_date BETWEEN $2 AND $3
		ORDER BY stat_date ASC
	`
	if err := r.db.SelectContext(ctx, &stats, query, userID, fromDay, toDay); err != nil {
		return nil, fmt.Errorf("failed to get daily stats range: %v", err)
	}
	return stats, nil
}
