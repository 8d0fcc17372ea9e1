package review

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Error taxonomy surfaced to the API layer. Callers discriminate with
// errors.Is; none of these are retried internally.
var (
	// ErrNotFound means the card, its schedule, or the owner doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the caller sent a correctable bad value
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict means another review of the same card is in flight;
	// the caller may retry with backoff
	ErrConflict = errors.New("conflict")
	// ErrStorage means the atomic write failed and was rolled back
	ErrStorage = errors.New("storage failure")
)

// lockNotAvailable is the PostgreSQL error code raised by FOR UPDATE NOWAIT
// when the row is already locked.
const lockNotAvailable = "55P03"

// mapStorageError classifies a driver error as a lock conflict or a generic
// storage failure.
func mapStorageError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == lockNotAvailable {
		return fmt.Errorf("%w: schedule row is locked by another review", ErrConflict)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: database is locked by another review", ErrConflict)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
