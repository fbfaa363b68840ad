package sweep

import (
	"fmt"
	"strconv"
	"strings"

	"emperror.dev/errors"
)

// ErrValidation matches every ValidationError.
const ErrValidation = errors.Sentinel("validation failed")

// ValidationError is returned for bad input, before any request is made.
type ValidationError struct {
	Input   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidNumber is the message shown for a count that isn't a non-negative integer.
const InvalidNumber = "Invalid number!"

// MaxChannels is the most channels a guild can have, so no count can usefully exceed it.
const MaxChannels = 500

// ParseCount parses a channel count typed by the user.
func ParseCount(s string) (int, error) {
	s = strings.TrimSpace(s)

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Input: s, Message: InvalidNumber}
	}

	return n, validateCount(n)
}

func validateCount(n int) error {
	if n < 0 {
		return &ValidationError{Input: strconv.Itoa(n), Message: InvalidNumber}
	}
	if n > MaxChannels {
		return &ValidationError{
			Input:   strconv.Itoa(n),
			Message: fmt.Sprintf("Too many channels! A server can have at most %d.", MaxChannels),
		}
	}
	return nil
}

// ParseSelection parses a 1-based menu selection between 1 and max.
func ParseSelection(s string, max int) (int, error) {
	s = strings.TrimSpace(s)

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > max {
		return 0, &ValidationError{Input: s, Message: "Invalid selection: " + strconv.Quote(s)}
	}
	return n, nil
}
