package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"impactready/internal/model"
)

var (
	// ErrUnknownQuestion is returned when an answer targets a code absent from the catalog
	ErrUnknownQuestion = errors.New("unknown question code")
	// ErrClosed is returned when a debouncer is used after teardown
	ErrClosed = errors.New("debouncer closed")
)

// InvalidReferenceError is a catalog configuration fault. Detected at load and
// fatal: the engine refuses to start on a broken catalog.
type InvalidReferenceError struct {
	QuestionCode string
	Reason       string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid catalog reference on question %q: %s", e.QuestionCode, e.Reason)
}

// TypeMismatchError is returned when an answer value's shape does not match the
// question's declared type. The answer is rejected locally and never persisted.
type TypeMismatchError struct {
	QuestionCode string
	Type         model.QuestionType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("answer shape does not match %s question %q", e.Type, e.QuestionCode)
}

// IncompleteSubmissionError is returned when scoring is attempted while a
// required reachable question has no answer.
type IncompleteSubmissionError struct {
	MissingCodes    []string
	MissingSections []string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("submission incomplete, missing answers: %s", strings.Join(e.MissingCodes, ", "))
}

// SaveFailedError wraps a persistence failure surfaced by the debouncer. It is
// not retried automatically; the next edit or an explicit flush re-triggers the save.
type SaveFailedError struct {
	RunID string
	Err   error
}

func (e *SaveFailedError) Error() string {
	return fmt.Sprintf("save failed for run %s: %v", e.RunID, e.Err)
}

func (e *SaveFailedError) Unwrap() error { return e.Err }

// CooldownActiveError rejects starting a new run before the cooldown window passes
type CooldownActiveError struct {
	Until time.Time
}

func (e *CooldownActiveError) Error() string {
	return fmt.Sprintf("cooldown active until %s", e.Until.Format(time.RFC3339))
}

// Remaining returns how long the caller has to wait, never negative
func (e *CooldownActiveError) Remaining(now time.Time) time.Duration {
	if d := e.Until.Sub(now); d > 0 {
		return d
	}
	return 0
}
