package spaced_repetition

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/praveen0raj/flashcard-app/pkg/models"
)

// ErrInvalidQuality is returned when a quality rating falls outside [0,5]
var ErrInvalidQuality = errors.New("quality must be between 0 and 5")

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Ratings at or above this threshold count as a correct recall
	PassThreshold int
	// Ease factor is never allowed below this floor
	MinEaseFactor float64
	// Fixed interval after the second consecutive correct recall
	SecondInterval int
}

// NewSM2 creates an SM2 instance with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:  int(QualityCorrectDifficult),
		MinEaseFactor:  models.MinEaseFactor,
		SecondInterval: 6,
	}
}

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// Result is the schedule state produced by one application of the algorithm
type Result struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
	NextDueAt    time.Time
}

// ValidateQuality rejects ratings outside the closed range [0,5]
func (sm *SM2) ValidateQuality(quality int) error {
	if quality < int(QualityBlackout) || quality > int(QualityPerfect) {
		return fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}
	return nil
}

// Next applies SM-2 to the prior schedule state and a quality rating.
// The returned due date is the UTC midnight of (now's day + new interval),
// so cards come due at calendar-day boundaries rather than drifting with
// the time of day a review happened.
func (sm *SM2) Next(prior models.CardSchedule, quality int, now time.Time) (Result, error) {
	if err := sm.ValidateQuality(quality); err != nil {
		return Result{}, err
	}

	// Ease factor updates on every answer, including failures, so a card
	// that keeps being hard grows slower even after its interval resets.
	newEase := prior.EaseFactor + (0.1 - (5.0-float64(quality))*(0.08+(5.0-float64(quality))*0.02))
	if newEase < sm.MinEaseFactor {
		newEase = sm.MinEaseFactor
	}

	var newRepetitions, newInterval int
	if quality >= sm.PassThreshold {
		newRepetitions = prior.Repetitions + 1
		switch newRepetitions {
		case 1:
			newInterval = 1
		case 2:
			newInterval = sm.SecondInterval
		default:
			newInterval = int(math.Round(float64(prior.IntervalDays) * newEase))
			if newInterval < 1 {
				newInterval = 1
			}
		}
	} else {
		// Incorrect recall: start over from a one-day interval
		newRepetitions = 0
		newInterval = 1
	}

	return Result{
		EaseFactor:   newEase,
		IntervalDays: newInterval,
		Repetitions:  newRepetitions,
		NextDueAt:    DayUTC(now).AddDate(0, 0, newInterval),
	}, nil
}

// IsCorrect reports whether a quality rating counts as a passing recall
func (sm *SM2) IsCorrect(quality int) bool {
	return quality >= sm.PassThreshold
}

// IsCardMastered determines if a card is considered "mastered"
func (sm *SM2) IsCardMastered(schedule *models.CardSchedule) bool {
	return schedule.Repetitions >= 5 && schedule.IntervalDays >= 30
}

// DayUTC truncates a timestamp to its UTC calendar day
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
