package ring

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the outcome of a queue operation.
//
// Structural conditions (Full, Empty) and contention (Busy) are ordinary
// return values, not failures.
type Status uint8

const (
	// Success means the operation was performed.
	Success Status = iota
	// Failure is reserved for resource failures.
	Failure
	// Full means the queue is at capacity under FailWhenFull.
	Full
	// Empty means there was nothing to dequeue.
	Empty
	// Busy means another goroutine won the claim. Nothing was changed.
	Busy
	// Unavailable means the queue has been closed.
	Unavailable
	// InvalidArgument means the caller passed a nil or mis-sized buffer,
	// or an unknown policy.
	InvalidArgument
)

var (
	ErrFailure         = errors.New("ring: failure")
	ErrFull            = errors.New("ring: queue is full")
	ErrEmpty           = errors.New("ring: queue is empty")
	ErrBusy            = errors.New("ring: slot busy")
	ErrUnavailable     = errors.New("ring: queue closed")
	ErrInvalidArgument = errors.New("ring: invalid argument")

	// ErrAllocation is returned by New when the storage cannot be allocated.
	ErrAllocation = errors.New("ring: allocation failed")
)

var statusNames = [...]string{
	Success:         "Success",
	Failure:         "Failure",
	Full:            "Full",
	Empty:           "Empty",
	Busy:            "Busy",
	Unavailable:     "Unavailable",
	InvalidArgument: "InvalidArgument",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Err maps the status to a sentinel error. Success maps to nil.
func (s Status) Err() error {
	switch s {
	case Success:
		return nil
	case Full:
		return ErrFull
	case Empty:
		return ErrEmpty
	case Busy:
		return ErrBusy
	case Unavailable:
		return ErrUnavailable
	case InvalidArgument:
		return ErrInvalidArgument
	default:
		return ErrFailure
	}
}

// OverwritePolicy selects what Enqueue does on a full queue.
type OverwritePolicy uint32

const (
	// FailWhenFull makes Enqueue return Full.
	FailWhenFull OverwritePolicy = iota
	// OverwriteOldest evicts the oldest element to make room.
	OverwriteOldest

	policyCount
)

// Valid reports whether p is a known policy.
func (p OverwritePolicy) Valid() bool {
	return p < policyCount
}

func (p OverwritePolicy) String() string {
	switch p {
	case FailWhenFull:
		return "FailWhenFull"
	case OverwriteOldest:
		return "OverwriteOldest"
	default:
		return fmt.Sprintf("OverwritePolicy(%d)", uint32(p))
	}
}

// ParseOverwritePolicy accepts "fail", "overwrite" and the String forms,
// case-insensitively.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "failwhenfull", "fail-when-full":
		return FailWhenFull, nil
	case "overwrite", "overwriteoldest", "overwrite-oldest":
		return OverwriteOldest, nil
	}
	return FailWhenFull, fmt.Errorf("%w: unknown overwrite policy %q", ErrInvalidArgument, s)
}
