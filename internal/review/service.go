package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/praveen0raj/flashcard-app/internal/database"
	"github.com/praveen0raj/flashcard-app/internal/spaced_repetition"
	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// Service is the only writer of schedules, review history, daily stats and
// streaks, and the one place those four move together or not at all.
type Service struct {
	db         *database.DB
	schedules  *database.ScheduleRepository
	history    *database.HistoryRepository
	dailyStats *database.DailyStatsRepository
	streaks    *database.StreakRepository
	sm2        *spaced_repetition.SM2
	log        *zap.Logger

	// now is swapped out by tests
	now func() time.Time
}

// NewService creates the review service on an open database handle
func NewService(db *database.DB, log *zap.Logger) *Service {
	return &Service{
		db:         db,
		schedules:  database.NewScheduleRepository(db),
		history:    database.NewHistoryRepository(db),
		dailyStats: database.NewDailyStatsRepository(db),
		streaks:    database.NewStreakRepository(db),
		sm2:        spaced_repetition.NewSM2(),
		log:        log,
		now:        time.Now,
	}
}

// SubmitReview records one recall attempt: it advances the card's schedule,
// appends a history entry, bumps the day's aggregates, and updates the study
// streak as a single transaction. Any failure rolls the whole event back.
func (s *Service) SubmitReview(ctx context.Context, userID, cardID int64, quality, latencySeconds int) (*models.ReviewResult, error) {
	if latencySeconds < 0 {
		return nil, fmt.Errorf("%w: latency must not be negative, got %d", ErrInvalidInput, latencySeconds)
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, mapStorageError(err)
	}
	defer tx.Rollback()

	prior, err := s.schedules.GetForUpdate(ctx, tx, userID, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no schedule for card %d", ErrNotFound, cardID)
	}
	if err != nil {
		return nil, mapStorageError(err)
	}

	next, err := s.sm2.Next(*prior, quality, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	streak, err := s.streaks.Get(ctx, tx, userID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	streakNext, skewed := spaced_repetition.NextStreak(streakState(streak), now)
	if skewed {
		s.log.Warn("study streak has a last study date in the future, treating as already studied",
			zap.Int64("user_id", userID),
			zap.String("last_study_date", streak.LastStudyDate.String))
	}

	// A card reviewed for the first time counts as newly learned
	newlyLearned := !prior.LastReviewedAt.Valid

	updated := *prior
	updated.EaseFactor = next.EaseFactor
	updated.IntervalDays = next.IntervalDays
	updated.Repetitions = next.Repetitions
	updated.NextDueAt = next.NextDueAt
	updated.LastReviewedAt = sql.NullTime{Time: now, Valid: true}
	updated.UpdatedAt = now
	if err := s.schedules.Update(ctx, tx, &updated); err != nil {
		return nil, mapStorageError(err)
	}

	correct := s.sm2.IsCorrect(quality)
	entry := &models.ReviewHistory{
		UserID:         userID,
		CardID:         cardID,
		Quality:        quality,
		Correct:        correct,
		EaseBefore:     prior.EaseFactor,
		EaseAfter:      next.EaseFactor,
		IntervalBefore: prior.IntervalDays,
		IntervalAfter:  next.IntervalDays,
		LatencySeconds: latencySeconds,
		ReviewedAt:     now,
	}
	if err := s.history.Append(ctx, tx, entry); err != nil {
		return nil, mapStorageError(err)
	}

	delta := database.StatsDelta{
		CardsReviewed: 1,
		TotalAnswers:  1,
		StudyMinutes:  minutesRoundedUp(latencySeconds),
	}
	if correct {
		delta.CorrectAnswers = 1
	}
	if newlyLearned {
		delta.CardsLearned = 1
	}
	if err := s.dailyStats.Apply(ctx, tx, userID, models.FormatDay(now), delta, now); err != nil {
		return nil, mapStorageError(err)
	}

	streakRow := &models.StudyStreak{
		UserID:        userID,
		CurrentStreak: streakNext.CurrentStreak,
		LongestStreak: streakNext.LongestStreak,
	}
	if streakNext.LastStudyDate != nil {
		streakRow.LastStudyDate = sql.NullString{String: models.FormatDay(*streakNext.LastStudyDate), Valid: true}
	}
	if err := s.streaks.Upsert(ctx, tx, streakRow, now); err != nil {
		return nil, mapStorageError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, mapStorageError(err)
	}

	return &models.ReviewResult{
		NewEaseFactor:   next.EaseFactor,
		NewIntervalDays: next.IntervalDays,
		NewRepetitions:  next.Repetitions,
		NewNextDueAt:    next.NextDueAt,
	}, nil
}

// DueCards returns the user's work queue: every card whose schedule has come
// due as of the given time, most overdue first, ties broken by card ID.
func (s *Service) DueCards(ctx context.Context, userID int64, asOf time.Time) ([]models.DueCard, error) {
	schedules, err := s.schedules.Due(ctx, userID, asOf)
	if err != nil {
		return nil, mapStorageError(err)
	}
	due := make([]models.DueCard, 0, len(schedules))
	for _, schedule := range schedules {
		due = append(due, models.DueCard{CardID: schedule.CardID, Schedule: schedule})
	}
	return due, nil
}

// InitializeSchedule creates the default schedule for a newly created card:
// ease 2.5, one-day interval, zero repetitions, due tomorrow. Card creation
// in the API layer must call this in the same breath as the insert.
func (s *Service) InitializeSchedule(ctx context.Context, userID, cardID int64) (*models.CardSchedule, error) {
	now := s.now().UTC()
	schedule := &models.CardSchedule{
		CardID:       cardID,
		UserID:       userID,
		EaseFactor:   models.DefaultEaseFactor,
		IntervalDays: models.DefaultIntervalDays,
		Repetitions:  0,
		NextDueAt:    spaced_repetition.DayUTC(now).AddDate(0, 0, models.DefaultIntervalDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, mapStorageError(err)
	}
	return schedule, nil
}

// Schedule returns the current schedule snapshot for one card
func (s *Service) Schedule(ctx context.Context, userID, cardID int64) (*models.CardSchedule, error) {
	schedule, err := s.schedules.Get(ctx, userID, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no schedule for card %d", ErrNotFound, cardID)
	}
	if err != nil {
		return nil, mapStorageError(err)
	}
	return schedule, nil
}

// UserSummary aggregates a user's schedule and streak state for dashboards
func (s *Service) UserSummary(ctx context.Context, userID int64) (*models.UserSummary, error) {
	now := s.now().UTC()
	total, due, mastered, avgEase, err := s.schedules.Stats(ctx, userID, now)
	if err != nil {
		return nil, mapStorageError(err)
	}
	reviews, err := s.history.CountByUser(ctx, userID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	streak, err := s.streaks.Get(ctx, s.db, userID)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return &models.UserSummary{
		TotalCards:    total,
		DueCards:      due,
		MasteredCards: mastered,
		TotalReviews:  reviews,
		AvgEaseFactor: avgEase,
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	}, nil
}

// DailyStatsRange returns per-day aggregates between two days inclusive
func (s *Service) DailyStatsRange(ctx context.Context, userID int64, from, to time.Time) ([]models.DailyStats, error) {
	stats, err := s.dailyStats.GetRange(ctx, userID, models.FormatDay(from), models.FormatDay(to))
	if err != nil {
		return nil, mapStorageError(err)
	}
	return stats, nil
}

// streakState converts the stored row into the pure tracker's value type
func streakState(row *models.StudyStreak) spaced_repetition.StreakState {
	state := spaced_repetition.StreakState{
		CurrentStreak: row.CurrentStreak,
		LongestStreak: row.LongestStreak,
	}
	if row.LastStudyDate.Valid {
		if day, err := models.ParseDay(row.LastStudyDate.String); err == nil {
			state.LastStudyDate = &day
		}
	}
	return state
}

// minutesRoundedUp converts a response latency to whole study minutes
func minutesRoundedUp(latencySeconds int) int {
	if latencySeconds <= 0 {
		return 0
	}
	return (latencySeconds + 59) / 60
}
