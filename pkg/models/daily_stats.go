package models

import "time"

// DailyStats aggregates a user's reviewing activity for one UTC calendar day.
// Exactly one row per (user, day); created on the first review of the day
// and incremented in place afterwards.
type DailyStats struct {
	UserID         int64     `json:"user_id" db:"user_id"`
	StatDate       string    `json:"stat_date" db:"stat_date"` // UTC day, formatted 2006-01-02
	CardsReviewed  int       `json:"cards_reviewed" db:"cards_reviewed"`
	CardsLearned   int       `json:"cards_learned" db:"cards_learned"` // cards seen for the first time
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	TotalAnswers   int       `json:"total_answers" db:"total_answers"`
	StudyMinutes   int       `json:"study_minutes" db:"study_minutes"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
