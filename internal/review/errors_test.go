package review

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestMapStorageError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "postgres lock not available is a conflict",
			err:  &pq.Error{Code: "55P03", Message: "could not obtain lock on row"},
			want: ErrConflict,
		},
		{
			name: "wrapped postgres lock error is still a conflict",
			err:  fmt.Errorf("get schedule: %w", &pq.Error{Code: "55P03"}),
			want: ErrConflict,
		},
		{
			name: "sqlite busy is a conflict",
			err:  sqlite3.Error{Code: sqlite3.ErrBusy},
			want: ErrConflict,
		},
		{
			name: "sqlite locked is a conflict",
			err:  sqlite3.Error{Code: sqlite3.ErrLocked},
			want: ErrConflict,
		},
		{
			name: "other postgres errors are storage failures",
			err:  &pq.Error{Code: "23505", Message: "duplicate key"},
			want: ErrStorage,
		},
		{
			name: "other sqlite errors are storage failures",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint},
			want: ErrStorage,
		},
		{
			name: "plain errors are storage failures",
			err:  errors.New("connection reset"),
			want: ErrStorage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := mapStorageError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapStorageError(%v) = %v, want %v", tt.err, got, tt.want)
			}
			if tt.want == ErrConflict && errors.Is(got, ErrStorage) {
				t.Errorf("mapStorageError(%v) classified as both conflict and storage failure", tt.err)
			}
		})
	}
}
