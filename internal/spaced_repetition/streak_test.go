package spaced_repetition

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(t time.Time) *time.Time { return &t }

func TestNextStreak(t *testing.T) {
	t.Parallel()
	today := day(2024, 3, 10)

	tests := []struct {
		name        string
		prior       StreakState
		wantCurrent int
		wantLongest int
		wantSkewed  bool
	}{
		{
			name:        "first ever study day",
			prior:       StreakState{},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "second review same day is a no-op",
			prior:       StreakState{CurrentStreak: 4, LongestStreak: 9, LastStudyDate: dayPtr(today)},
			wantCurrent: 4,
			wantLongest: 9,
		},
		{
			name:        "studied yesterday extends the run",
			prior:       StreakState{CurrentStreak: 5, LongestStreak: 12, LastStudyDate: dayPtr(day(2024, 3, 9))},
			wantCurrent: 6,
			wantLongest: 12,
		},
		{
			name:        "extending past the record raises it",
			prior:       StreakState{CurrentStreak: 12, LongestStreak: 12, LastStudyDate: dayPtr(day(2024, 3, 9))},
			wantCurrent: 13,
			wantLongest: 13,
		},
		{
			name:        "a gap resets the run but keeps the record",
			prior:       StreakState{CurrentStreak: 5, LongestStreak: 12, LastStudyDate: dayPtr(day(2024, 3, 7))},
			wantCurrent: 1,
			wantLongest: 12,
		},
		{
			name:        "future last study date is treated as already counted",
			prior:       StreakState{CurrentStreak: 3, LongestStreak: 7, LastStudyDate: dayPtr(day(2024, 3, 12))},
			wantCurrent: 3,
			wantLongest: 7,
			wantSkewed:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, skewed := NextStreak(tt.prior, today)
			if got.CurrentStreak != tt.wantCurrent {
				t.Errorf("CurrentStreak = %d, want %d", got.CurrentStreak, tt.wantCurrent)
			}
			if got.LongestStreak != tt.wantLongest {
				t.Errorf("LongestStreak = %d, want %d", got.LongestStreak, tt.wantLongest)
			}
			if skewed != tt.wantSkewed {
				t.Errorf("skewed = %v, want %v", skewed, tt.wantSkewed)
			}
			if got.LastStudyDate == nil {
				t.Fatal("LastStudyDate should never be nil after an update")
			}
			if !tt.wantSkewed && !got.LastStudyDate.Equal(today) {
				t.Errorf("LastStudyDate = %v, want %v", got.LastStudyDate, today)
			}
		})
	}
}

// Applying the tracker twice on the same day changes nothing the second time.
func TestNextStreakIdempotentWithinDay(t *testing.T) {
	t.Parallel()
	today := day(2024, 3, 10)
	first, _ := NextStreak(StreakState{CurrentStreak: 2, LongestStreak: 5, LastStudyDate: dayPtr(day(2024, 3, 9))}, today)
	second, _ := NextStreak(first, today)
	if second.CurrentStreak != first.CurrentStreak || second.LongestStreak != first.LongestStreak {
		t.Errorf("second application changed state: %+v vs %+v", second, first)
	}
}

// LongestStreak never decreases across any sequence of applications.
func TestNextStreakLongestMonotonic(t *testing.T) {
	t.Parallel()
	state := StreakState{}
	days := []time.Time{
		day(2024, 3, 1),
		day(2024, 3, 2),
		day(2024, 3, 3),
		day(2024, 3, 3), // same day twice
		day(2024, 3, 7), // gap
		day(2024, 3, 8),
		day(2024, 3, 9),
		day(2024, 3, 10),
	}
	prevLongest := 0
	for _, d := range days {
		state, _ = NextStreak(state, d)
		if state.LongestStreak < prevLongest {
			t.Fatalf("longest streak decreased from %d to %d on %v", prevLongest, state.LongestStreak, d)
		}
		if state.LongestStreak < state.CurrentStreak {
			t.Fatalf("longest %d fell below current %d on %v", state.LongestStreak, state.CurrentStreak, d)
		}
		prevLongest = state.LongestStreak
	}
	if state.CurrentStreak != 4 {
		t.Errorf("final CurrentStreak = %d, want 4", state.CurrentStreak)
	}
}
