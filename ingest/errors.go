package ingest

import (
	"errors"
	"fmt"

	"github.com/finantrack/cartola/extractor/common"
)

// ExtractionError is re-exported so callers only need this package to
// discriminate failures.
type ExtractionError = common.ExtractionError

var (
	// ErrDuplicateStatement means the same file was already ingested for the user.
	ErrDuplicateStatement = errors.New("statement already imported")
	// ErrMissingReference means required reference data is absent from the store.
	ErrMissingReference = errors.New("missing reference data")
	// ErrCardNotFound means the target card does not exist or belongs to someone else.
	ErrCardNotFound = errors.New("card not found")
)

// LimitExceededError is returned when the user's plan does not allow the
// upload. Nothing has been written when it is returned.
type LimitExceededError struct {
	Key       string
	Limit     int
	Remaining int
	Requested int
	// Denied is set when the plan lacks the permission altogether.
	Denied bool
}

func (e *LimitExceededError) Error() string {
	if e.Denied {
		return fmt.Sprintf("plan does not include %s", e.Key)
	}
	return fmt.Sprintf("plan limit reached for %s: %d movements requested, %d of %d remaining this month",
		e.Key, e.Requested, e.Remaining, e.Limit)
}

// PersistenceError wraps a storage failure. Any open transaction was rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}
