package domain

import (
	"errors"
	"fmt"
)

// AssertionError is an expected-outcome mismatch. It is recoverable per case:
// the run continues and the case may be retried.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return e.Msg }

// Assertf builds an AssertionError from a format string.
func Assertf(format string, args ...any) error {
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}

// IsAssertion reports whether err is (or wraps) an assertion failure.
func IsAssertion(err error) bool {
	var assertion *AssertionError
	return errors.As(err, &assertion)
}

// InfraError marks an infrastructure failure (browser engine unavailable,
// driver connection lost). It is fatal to the run.
type InfraError struct {
	Op  string
	Err error
}

func (e *InfraError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("infrastructure: %s", e.Op)
	}
	return fmt.Sprintf("infrastructure: %s: %v", e.Op, e.Err)
}

func (e *InfraError) Unwrap() error { return e.Err }

// Infraf wraps err as an infrastructure failure for the given operation.
func Infraf(op string, err error) error {
	return &InfraError{Op: op, Err: err}
}

// IsInfra reports whether err is (or wraps) an infrastructure failure.
func IsInfra(err error) bool {
	var infra *InfraError
	return errors.As(err, &infra)
}

// SkipError signals that a case opted out for the current environment.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// Skipf builds a SkipError from a format string.
func Skipf(format string, args ...any) error {
	return &SkipError{Reason: fmt.Sprintf(format, args...)}
}

// IsSkip reports whether err is (or wraps) a skip signal.
func IsSkip(err error) bool {
	var skip *SkipError
	return errors.As(err, &skip)
}
