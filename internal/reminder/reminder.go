package reminder

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/praveen0raj/flashcard-app/internal/database"
	"github.com/praveen0raj/flashcard-app/internal/review"
)

// Default notification window in UTC hours
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Notifier delivers a due-card digest to a user
type Notifier interface {
	SendDueDigest(user int64, chatID int64, count int) error
}

// Scheduler runs the hourly due-card digest job. Due-card detection itself
// stays pull-based; this only sits on top of the due query.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     *database.UserRepository
	reviews   *review.Service
	notifier  Notifier
	log       *zap.Logger
}

// New creates a reminder scheduler
func New(db *database.DB, reviews *review.Service, notifier Notifier, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     database.NewUserRepository(db),
		reviews:   reviews,
		notifier:  notifier,
		log:       log,
	}
}

// Start begins the hourly digest job without blocking
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendDigests)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendDigests() {
	currentHour := time.Now().UTC().Hour()

	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultEndHour)

	if currentHour < startHour || currentHour > endHour {
		s.log.Debug("outside notification window, skipping digests",
			zap.Int("hour", currentHour),
			zap.Int("start", startHour),
			zap.Int("end", endHour))
		return
	}

	ctx := context.Background()
	users, err := s.users.GetUsersForNotification(ctx, currentHour)
	if err != nil {
		s.log.Error("failed to get users for notification", zap.Error(err))
		return
	}

	for _, user := range users {
		due, err := s.reviews.DueCards(ctx, user.ID, time.Now().UTC())
		if err != nil {
			s.log.Error("failed to get due cards", zap.Int64("user_id", user.ID), zap.Error(err))
			continue
		}
		if len(due) == 0 {
			continue
		}
		if err := s.notifier.SendDueDigest(user.ID, user.TelegramID, len(due)); err != nil {
			s.log.Error("failed to send due digest", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}
}

// RunManualCheck sends a digest for one user immediately if anything is due
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	due, err := s.reviews.DueCards(ctx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}
	return s.notifier.SendDueDigest(user.ID, user.TelegramID, len(due))
}

func hourFromEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
