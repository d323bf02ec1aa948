package provider

import (
	"context"
	"errors"
	"net"
)

// Status classifies the result of one adapter call.
type Status int

const (
	StatusAbsent Status = iota
	StatusPresent
	StatusTimedOut
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusTimedOut:
		return "timed_out"
	case StatusFailed:
		return "failed"
	default:
		return "absent"
	}
}

// Outcome is the tagged result of a fault-isolated adapter call.
// Value is non-nil only when Status is StatusPresent.
type Outcome[T any] struct {
	Status Status
	Value  *T
	Err    error
}

// OK reports whether the call produced a value.
func (o Outcome[T]) OK() bool { return o.Status == StatusPresent && o.Value != nil }

// NewOutcome classifies the (value, error) pair returned by an adapter.
func NewOutcome[T any](v *T, err error) Outcome[T] {
	switch {
	case err != nil && IsTimeout(err):
		return Outcome[T]{Status: StatusTimedOut, Err: err}
	case err != nil:
		return Outcome[T]{Status: StatusFailed, Err: err}
	case v == nil:
		return Outcome[T]{Status: StatusAbsent}
	default:
		return Outcome[T]{Status: StatusPresent, Value: v}
	}
}

// IsTimeout reports whether err is a deadline or network timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
