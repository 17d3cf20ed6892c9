package session

import (
	"errors"
	"fmt"
)

// Intent errors. None of them change state.
var (
	ErrResumePending   = errors.New("a saved session is waiting to be resumed or discarded")
	ErrNothingToResume = errors.New("no saved session to resume")
	ErrBusy            = errors.New("a request for this flow is already in progress")
	ErrWrongMode       = errors.New("not available in the current mode")
	ErrNoQuestion      = errors.New("no question is loaded")
	ErrAlreadyGraded   = errors.New("question already graded")
	ErrNotGraded       = errors.New("question has not been graded yet")
	ErrElaborated      = errors.New("explanation already requested for this question")
	ErrNoExam          = errors.New("no exam is in progress")
	ErrUnknownPaper    = errors.New("unknown past paper")
	ErrBadDifficulty   = errors.New("invalid difficulty")

	// ErrStale is returned when a generation result arrives after the flow
	// that requested it was abandoned, or when an exam answer targets a
	// question that is no longer on display. Either is discarded.
	ErrStale = errors.New("result discarded: session moved on")
)

// CorruptSnapshotError reports a stored snapshot that cannot be restored.
type CorruptSnapshotError struct {
	Err error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt session snapshot: %v", e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Err
}
