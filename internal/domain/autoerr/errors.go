// Package autoerr defines the error taxonomy shared by the automation runners.
//
// LaunchError and StageTimeoutError are fatal for a run and propagate to the
// HTTP caller. FieldFillError and ErrSubmissionExhausted are absorbed locally:
// the scan or stage continues best-effort after logging them.
package autoerr

import (
	"errors"
	"fmt"
	"time"
)

// ErrSubmissionExhausted is returned when every submission strategy in the
// fallback chain failed to find a target. Callers proceed best-effort, since
// some pages auto-advance without an explicit click.
var ErrSubmissionExhausted = errors.New("all submission strategies exhausted")

// LaunchError means the browser process never started. No retry inside the run.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("browser launch failed: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// StageTimeoutError means a critical stage wait exceeded its bound.
type StageTimeoutError struct {
	Stage    string
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *StageTimeoutError) Error() string {
	return fmt.Sprintf("stage %q timed out after %s waiting for %q: %v",
		e.Stage, e.Timeout, e.Selector, e.Err)
}

func (e *StageTimeoutError) Unwrap() error { return e.Err }

// NoResultsError means the terminal confirmation surface never appeared or
// was empty. No partial result is returned alongside it.
type NoResultsError struct {
	Reason string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no results: %s", e.Reason)
}

// FieldFillError wraps a failure to read or write one form control. It is
// logged and the remaining scan continues.
type FieldFillError struct {
	Field string
	Err   error
}

func (e *FieldFillError) Error() string {
	return fmt.Sprintf("field %q fill failed: %v", e.Field, e.Err)
}

func (e *FieldFillError) Unwrap() error { return e.Err }
