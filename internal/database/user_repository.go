package database

import (
	"context"
	"fmt"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in the generated ID
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if r.db.Driver == DriverPostgres {
		query := `
			INSERT INTO users (telegram_id, username, notification_enabled, notification_hour, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id
		`
		return r.db.QueryRowContext(ctx, query,
			user.TelegramID, user.Username, user.NotificationEnabled, user.NotificationHour, user.CreatedAt).Scan(&user.ID)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (telegram_id, username, notification_enabled, notification_hour, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5)`,
		user.TelegramID, user.Username, user.NotificationEnabled, user.NotificationHour, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	user.ID = id
	return nil
}

// GetByID returns a user by internal ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID returns a user by their Telegram chat ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE telegram_id = $1", telegramID); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersForNotification returns users who want a reminder at the given hour
func (r *UserRepository) GetUsersForNotification(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	query := `
		SELECT * FROM users
		WHERE notification_enabled = true AND notification_hour = $1
	`
	if err := r.db.SelectContext(ctx, &users, query, hour); err != nil {
		return nil, fmt.Errorf("failed to get users for notification: %v", err)
	}
	return users, nil
}
