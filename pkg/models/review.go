package models

import "time"

// ReviewHistory is an append-only audit record, one row per review event
type ReviewHistory struct {
	ID             string    `json:"id" db:"id"` // UUID
	UserID         int64     `json:"user_id" db:"user_id"`
	CardID         int64     `json:"card_id" db:"card_id"`
	Quality        int       `json:"quality" db:"quality"` // 0-5 self-reported recall score
	Correct        bool      `json:"correct" db:"correct"`
	EaseBefore     float64   `json:"ease_before" db:"ease_before"`
	EaseAfter      float64   `json:"ease_after" db:"ease_after"`
	IntervalBefore int       `json:"interval_before" db:"interval_before"`
	IntervalAfter  int       `json:"interval_after" db:"interval_after"`
	LatencySeconds int       `json:"latency_seconds" db:"latency_seconds"`
	ReviewedAt     time.Time `json:"reviewed_at" db:"reviewed_at"`
}

// ReviewResult is returned to the caller after a review is committed
type ReviewResult struct {
	NewEaseFactor   float64   `json:"new_ease_factor"`
	NewIntervalDays int       `json:"new_interval_days"`
	NewRepetitions  int       `json:"new_repetitions"`
	NewNextDueAt    time.Time `json:"new_next_due_at"`
}
