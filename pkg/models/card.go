package models

import "time"

// Card represents a single question/answer unit subject to scheduling.
// Content editing lives in the API layer; the core only needs ownership
// and cascade semantics.
type Card struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Front     string    `json:"front" db:"front"`
	Back      string    `json:"back" db:"back"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
