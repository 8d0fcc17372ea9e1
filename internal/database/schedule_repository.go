package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// ScheduleRepository handles database operations for card schedules
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new repository instance
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts the schedule row for a newly created card
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.CardSchedule) error {
	query := `
		INSERT INTO card_schedules (
			card_id, user_id, ease_factor, interval_days, repetitions,
			next_due_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		schedule.CardID,
		schedule.UserID,
		schedule.EaseFactor,
		schedule.IntervalDays,
		schedule.Repetitions,
		schedule.NextDueAt,
		schedule.CreatedAt,
	)
	return err
}

// Get returns the schedule for a specific user and card.
// Callers translate sql.ErrNoRows into their own not-found error.
func (r *ScheduleRepository) Get(ctx context.Context, userID, cardID int64) (*models.CardSchedule, error) {
	var schedule models.CardSchedule
	err := r.db.GetContext(ctx, &schedule,
		"SELECT * FROM card_schedules WHERE user_id = $1 AND card_id = $2", userID, cardID)
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// GetForUpdate reads the schedule inside a transaction with the row locked
// against concurrent reviewers. On PostgreSQL this is FOR UPDATE NOWAIT, so
// a second reviewer of the same card fails fast instead of queueing; SQLite
// runs a single writer so the plain read is already serialized.
func (r *ScheduleRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, userID, cardID int64) (*models.CardSchedule, error) {
	query := "SELECT * FROM card_schedules WHERE user_id = $1 AND card_id = $2"
	if r.db.Driver == DriverPostgres {
		query += " FOR UPDATE NOWAIT"
	}
	var schedule models.CardSchedule
	if err := tx.GetContext(ctx, &schedule, query, userID, cardID); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Update overwrites the schedule state inside the review transaction
func (r *ScheduleRepository) Update(ctx context.Context, tx *sqlx.Tx, schedule *models.CardSchedule) error {
	query := `
		UPDATE card_schedules SET
			ease_factor = $1,
			interval_days = $2,
			repetitions = $3,
			next_due_at = $4,
			last_reviewed_at = $5,
			updated_at = $6
		WHERE user_id = $7 AND card_id = $8
	`
	_, err := tx.ExecContext(ctx, query,
		schedule.EaseFactor,
		schedule.IntervalDays,
		schedule.Repetitions,
		schedule.NextDueAt,
		schedule.LastReviewedAt,
		schedule.UpdatedAt,
		schedule.UserID,
		schedule.CardID,
	)
	return err
}

// Due returns all schedules for the user that have come due as of the given
// time, most overdue first, ties broken by card ID for determinism.
func (r *ScheduleRepository) Due(ctx context.Context, userID int64, asOf time.Time) ([]models.CardSchedule, error) {
	var schedules []models.CardSchedule
	query := `
		SELECT * FROM card_schedules
		WHERE user_id = $1 AND next_due_at <= $2
		ORDER BY next_due_at ASC, card_id ASC
	`
	if err := r.db.SelectContext(ctx, &schedules, query, userID, asOf); err != nil {
		return nil, err
	}
	return schedules, nil
}

// scheduleStats carries the aggregate columns of the summary query
type scheduleStats struct {
	TotalCards    int     `db:"total_cards"`
	DueCards      int     `db:"due_cards"`
	MasteredCards int     `db:"mastered_cards"`
	AvgEaseFactor float64 `db:"avg_ease_factor"`
}

// Stats returns aggregate schedule counts for a user's summary
func (r *ScheduleRepository) Stats(ctx context.Context, userID int64, asOf time.Time) (total, due, mastered int, avgEase float64, err error) {
	query := `
		SELECT
			COUNT(*) AS total_cards,
			COALESCE(SUM(CASE WHEN next_due_at <= $1 THEN 1 ELSE 0 END), 0) AS due_cards,
			COALESCE(SUM(CASE WHEN repetitions >= 5 AND interval_days >= 30 THEN 1 ELSE 0 END), 0) AS mastered_cards,
			COALESCE(AVG(ease_factor), 0) AS avg_ease_factor
		FROM card_schedules
		WHERE user_id = $2
	`
	var stats scheduleStats
	if err = r.db.GetContext(ctx, &stats, query, asOf, userID); err != nil {
		return 0, 0, 0, 0, err
	}
	return stats.TotalCards, stats.DueCards, stats.MasteredCards, stats.AvgEaseFactor, nil
}
