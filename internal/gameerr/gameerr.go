// Package gameerr defines the error taxonomy shared by the horse racing engine.
//
// Every domain error carries a stable machine-readable Code and a human-readable
// message. Callers branch on the code with errors.Is against the sentinel values
// or with CodeOf.
package gameerr

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure.
type Code string

const (
	CodeHorseGeneration Code = "HORSE_GENERATION_ERROR"
	CodeRaceSchedule    Code = "RACE_SCHEDULE_ERROR"
	CodeRaceExecution   Code = "RACE_EXECUTION_ERROR"
)

// Sentinels for errors.Is matching by code.
var (
	ErrHorseGeneration = &Error{Code: CodeHorseGeneration}
	ErrRaceSchedule    = &Error{Code: CodeRaceSchedule}
	ErrRaceExecution   = &Error{Code: CodeRaceExecution}
)

// Error is the error envelope returned by generation, scheduling and race execution.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// HorseGeneration reports an unusable candidate pool.
func HorseGeneration(format string, args ...any) *Error {
	return &Error{Code: CodeHorseGeneration, Message: fmt.Sprintf(format, args...)}
}

// RaceSchedule reports a schedule that could not be built.
func RaceSchedule(format string, args ...any) *Error {
	return &Error{Code: CodeRaceSchedule, Message: fmt.Sprintf(format, args...)}
}

// RaceExecution reports a failed or refused race run. cause may be nil.
func RaceExecution(cause error, format string, args ...any) *Error {
	return &Error{Code: CodeRaceExecution, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf returns the code of the outermost *Error in err's chain, or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
