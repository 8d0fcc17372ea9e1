package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()
	db, err := ConnectSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	return db, func() { db.Close() }
}

func seedUser(t *testing.T, db *DB, telegramID int64) int64 {
	t.Helper()
	user := &models.User{
		TelegramID:          telegramID,
		Username:            "tester",
		NotificationEnabled: true,
		NotificationHour:    9,
		CreatedAt:           time.Now().UTC(),
	}
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user.ID
}

func TestDailyStatsApplyAccumulates(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := seedUser(t, db, 100)
	repo := NewDailyStatsRepository(db)
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

	apply := func(delta StatsDelta) {
		t.Helper()
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTxx() error: %v", err)
		}
		if err := repo.Apply(ctx, tx, userID, "2024-03-10", delta, now); err != nil {
			tx.Rollback()
			t.Fatalf("Apply() error: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
	}

	apply(StatsDelta{CardsReviewed: 1, CardsLearned: 1, CorrectAnswers: 1, TotalAnswers: 1, StudyMinutes: 2})
	apply(StatsDelta{CardsReviewed: 1, TotalAnswers: 1, StudyMinutes: 1})

	stats, err := repo.Get(ctx, userID, "2024-03-10")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if stats.CardsReviewed != 2 {
		t.Errorf("CardsReviewed = %d, want 2", stats.CardsReviewed)
	}
	if stats.CardsLearned != 1 {
		t.Errorf("CardsLearned = %d, want 1", stats.CardsLearned)
	}
	if stats.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", stats.CorrectAnswers)
	}
	if stats.TotalAnswers != 2 {
		t.Errorf("TotalAnswers = %d, want 2", stats.TotalAnswers)
	}
	if stats.StudyMinutes != 3 {
		t.Errorf("StudyMinutes = %d, want 3", stats.StudyMinutes)
	}
}

func TestDailyStatsGetRangeOrdersByDay(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := seedUser(t, db, 101)
	repo := NewDailyStatsRepository(db)
	now := time.Now().UTC()

	for _, day := range []string{"2024-03-12", "2024-03-10", "2024-03-11"} {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTxx() error: %v", err)
		}
		if err := repo.Apply(ctx, tx, userID, day, StatsDelta{CardsReviewed: 1, TotalAnswers: 1}, now); err != nil {
			t.Fatalf("Apply(%s) error: %v", day, err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
	}

	stats, err := repo.GetRange(ctx, userID, "2024-03-10", "2024-03-11")
	if err != nil {
		t.Fatalf("GetRange() error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("len(stats) = %d, want 2", len(stats))
	}
	if stats[0].StatDate != "2024-03-10" || stats[1].StatDate != "2024-03-11" {
		t.Errorf("range order = %s, %s; want oldest first", stats[0].StatDate, stats[1].StatDate)
	}
}

func TestStreakUpsertInsertThenUpdate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := seedUser(t, db, 102)
	repo := NewStreakRepository(db)
	now := time.Now().UTC()

	// Missing row reads as a zero streak
	streak, err := repo.Get(ctx, db, userID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if streak.CurrentStreak != 0 || streak.LastStudyDate.Valid {
		t.Errorf("zero streak = %+v", streak)
	}

	upsert := func(current, longest int, day string) {
		t.Helper()
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTxx() error: %v", err)
		}
		row := &models.StudyStreak{
			UserID:        userID,
			CurrentStreak: current,
			LongestStreak: longest,
			LastStudyDate: sql.NullString{String: day, Valid: true},
		}
		if err := repo.Upsert(ctx, tx, row, now); err != nil {
			t.Fatalf("Upsert() error: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error: %v", err)
		}
	}

	upsert(1, 1, "2024-03-10")
	upsert(2, 5, "2024-03-11")

	streak, err = repo.Get(ctx, db, userID)
	if err != nil {
		t.Fatalf("Get() after upserts error: %v", err)
	}
	if streak.CurrentStreak != 2 || streak.LongestStreak != 5 {
		t.Errorf("streak = %d/%d, want 2/5", streak.CurrentStreak, streak.LongestStreak)
	}
	if streak.LastStudyDate.String != "2024-03-11" {
		t.Errorf("LastStudyDate = %q, want 2024-03-11", streak.LastStudyDate.String)
	}
}

func TestGetUsersForNotification(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	repo := NewUserRepository(db)
	morning := &models.User{TelegramID: 200, NotificationEnabled: true, NotificationHour: 9, CreatedAt: time.Now().UTC()}
	evening := &models.User{TelegramID: 201, NotificationEnabled: true, NotificationHour: 20, CreatedAt: time.Now().UTC()}
	muted := &models.User{TelegramID: 202, NotificationEnabled: false, NotificationHour: 9, CreatedAt: time.Now().UTC()}
	for _, u := range []*models.User{morning, evening, muted} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create() error: %v", err)
		}
	}

	users, err := repo.GetUsersForNotification(ctx, 9)
	if err != nil {
		t.Fatalf("GetUsersForNotification() error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].TelegramID != 200 {
		t.Errorf("TelegramID = %d, want 200", users[0].TelegramID)
	}
}

func TestGetByTelegramID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := seedUser(t, db, 250)
	repo := NewUserRepository(db)

	user, err := repo.GetByTelegramID(ctx, 250)
	if err != nil {
		t.Fatalf("GetByTelegramID() error: %v", err)
	}
	if user.ID != userID {
		t.Errorf("ID = %d, want %d", user.ID, userID)
	}
	if user.Username != "tester" {
		t.Errorf("Username = %q, want tester", user.Username)
	}

	if _, err := repo.GetByTelegramID(ctx, 999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByTelegramID(missing) error = %v, want sql.ErrNoRows", err)
	}
}

func TestCardGetByFrontMissing(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := seedUser(t, db, 300)
	_, err := NewCardRepository(db).GetByFront(ctx, userID, "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByFront() error = %v, want sql.ErrNoRows", err)
	}
}
