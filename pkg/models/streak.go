package models

import (
	"database/sql"
	"time"
)

// StudyStreak tracks consecutive study days, one row per user.
// LongestStreak >= CurrentStreak at every observable instant.
type StudyStreak struct {
	UserID        int64          `json:"user_id" db:"user_id"`
	CurrentStreak int            `json:"current_streak" db:"current_streak"`
	LongestStreak int            `json:"longest_streak" db:"longest_streak"`
	LastStudyDate sql.NullString `json:"last_study_date" db:"last_study_date"` // UTC day, formatted 2006-01-02
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// UserSummary is a read-only snapshot of a user's overall progress
type UserSummary struct {
	TotalCards    int     `json:"total_cards"`
	DueCards      int     `json:"due_cards"`
	MasteredCards int     `json:"mastered_cards"` // reviewed at least 5 times with interval >= 30 days
	TotalReviews  int     `json:"total_reviews"`
	AvgEaseFactor float64 `json:"avg_ease_factor"` // 0 until the user has scheduled cards
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
}

// ParseDay parses a stored 2006-01-02 day string as midnight UTC
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// FormatDay renders a timestamp as its UTC calendar day
func FormatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
