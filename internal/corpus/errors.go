package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData matches any *NoDataError.
	ErrNoData = errors.New("no data for age")

	// ErrUnsatisfiable matches any *UnsatisfiableError.
	ErrUnsatisfiable = errors.New("unsatisfiable constraint")

	// ErrInsufficientDistractors is returned by a single generation attempt
	// when fewer than three distinct wrong options could be assembled.
	// Generators retry on it and escalate to *UnsatisfiableError.
	ErrInsufficientDistractors = errors.New("insufficient distractors")
)

// NoDataError reports that the requested age has no corpus or vocabulary
// entries.
type NoDataError struct {
	Source string // "corpus", "vocabulary"
	Age    int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no %s data for age %d", e.Source, e.Age)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

// UnsatisfiableError reports that the retry budget was exhausted without
// finding a sentence, role, and distractor combination of the requested
// shape.
type UnsatisfiableError struct {
	Kind     string
	Age      int
	Attempts int
	Err      error
}

func (e *UnsatisfiableError) Error() string {
	msg := fmt.Sprintf("could not generate %s for age %d after %d attempts", e.Kind, e.Age, e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UnsatisfiableError) Is(target error) bool { return target == ErrUnsatisfiable }

func (e *UnsatisfiableError) Unwrap() error { return e.Err }
