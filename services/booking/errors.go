package booking

import (
	"errors"
	"fmt"
)

// ErrNoWizard is returned when a chat has no in-flight wizard (never started,
// expired, or already completed).
var ErrNoWizard = errors.New("no active reservation wizard")

// ValidationError rejects a step transition. Message is user-facing.
type ValidationError struct {
	Step    Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

// SubmitError wraps a failed submission; the wizard stays on the summary step
// and the draft is kept intact for resubmission.
type SubmitError struct {
	Stage   string // "create" or "pay"
	Message string // user-facing, server detail when available
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit failed at %s: %s", e.Stage, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
