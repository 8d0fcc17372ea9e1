package database

import (
	"context"
	"fmt"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// CardRepository handles the ownership side of cards. Content editing lives
// in the API layer; the core needs cards only as schedule owners and
// cascade roots.
type CardRepository struct {
	db *DB
}

// NewCardRepository creates a new repository instance
func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create inserts a card and fills in its generated ID
func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	if r.db.Driver == DriverPostgres {
		query := `
			INSERT INTO cards (user_id, front, back, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			RETURNING id
		`
		return r.db.QueryRowContext(ctx, query,
			card.UserID, card.Front, card.Back, card.CreatedAt).Scan(&card.ID)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (user_id, front, back, created_at, updated_at) VALUES ($1, $2, $3, $4, $4)`,
		card.UserID, card.Front, card.Back, card.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create card: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	card.ID = id
	return nil
}

// Get returns a card owned by the given user.
// Callers translate sql.ErrNoRows into their own not-found error.
func (r *CardRepository) Get(ctx context.Context, userID, cardID int64) (*models.Card, error) {
	var card models.Card
	err := r.db.GetContext(ctx, &card,
		"SELECT * FROM cards WHERE user_id = $1 AND id = $2", userID, cardID)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetByFront looks a card up by its front text, used by the importer to
// skip duplicates.
func (r *CardRepository) GetByFront(ctx context.Context, userID int64, front string) (*models.Card, error) {
	var card models.Card
	err := r.db.GetContext(ctx, &card,
		"SELECT * FROM cards WHERE user_id = $1 AND front = $2", userID, front)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Delete removes a card. The schedule and review history rows cascade away
// with it; daily stats and streaks are user-scoped and stay untouched.
func (r *CardRepository) Delete(ctx context.Context, userID, cardID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM cards WHERE user_id = $1 AND id = $2", userID, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %v", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %v", err)
	}
	if rows == 0 {
		return fmt.Errorf("card not found or user doesn't have permission")
	}
	return nil
}
