package models

import (
	"database/sql"
	"time"
)

// Default schedule values for a freshly created card
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 1
	MinEaseFactor       = 1.3
)

// CardSchedule tracks a card's SM-2 scheduling state, one row per card
type CardSchedule struct {
	CardID         int64        `json:"card_id" db:"card_id"`
	UserID         int64        `json:"user_id" db:"user_id"`
	EaseFactor     float64      `json:"ease_factor" db:"ease_factor"`     // SM-2 EF parameter, never below 1.3
	IntervalDays   int          `json:"interval_days" db:"interval_days"` // Current interval in days, >= 1
	Repetitions    int          `json:"repetitions" db:"repetitions"`     // Consecutive passing recalls since last reset
	NextDueAt      time.Time    `json:"next_due_at" db:"next_due_at"`
	LastReviewedAt sql.NullTime `json:"last_reviewed_at" db:"last_reviewed_at"` // Null until first review
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// DueCard pairs a due card ID with its schedule snapshot
type DueCard struct {
	CardID   int64        `json:"card_id"`
	Schedule CardSchedule `json:"schedule"`
}
