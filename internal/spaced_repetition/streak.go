package spaced_repetition

import "time"

// StreakState is the pure streak value: consecutive study days, best run,
// and the last day any review happened (nil before the first ever review).
type StreakState struct {
	CurrentStreak int
	LongestStreak int
	LastStudyDate *time.Time // midnight UTC
}

// NextStreak advances a streak for a review happening on the given day.
// It is idempotent across multiple reviews on the same day. The second
// return value reports a clock-skew anomaly: a stored last-study date in
// the future is treated as "already studied today" instead of failing,
// and the caller should log it.
func NextStreak(prior StreakState, today time.Time) (StreakState, bool) {
	day := DayUTC(today)
	next := StreakState{
		CurrentStreak: prior.CurrentStreak,
		LongestStreak: prior.LongestStreak,
		LastStudyDate: &day,
	}

	skewed := false
	switch {
	case prior.LastStudyDate == nil:
		next.CurrentStreak = 1
	case prior.LastStudyDate.After(day):
		skewed = true
		next.LastStudyDate = prior.LastStudyDate
	case prior.LastStudyDate.Equal(day):
		// already counted today
	case prior.LastStudyDate.Equal(day.AddDate(0, 0, -1)):
		next.CurrentStreak = prior.CurrentStreak + 1
	default:
		// gap of more than one day resets the run
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next, skewed
}
