// Package lifecycle describes the progress of asynchronous store operations.
//
// Each operation goes pending, then fulfilled or rejected:
//
//	Idle -> Loading -> Succeeded
//	             \---> Failed
//
// A new request may start from any phase.
package lifecycle

import (
	"sync/atomic"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status of an operation.
type Status struct {
	Phase Phase

	// Error is the message of the last failure. Empty unless Phase is Failed.
	Error string
}

func (s Status) IsLoading() bool {
	return s.Phase == Loading
}

// Pending returns the status of the operation just started.
//
// The previous error is cleared.
func Pending() Status {
	return Status{Phase: Loading}
}

func Fulfilled() Status {
	return Status{Phase: Succeeded}
}

func Rejected(err error) Status {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return Status{Phase: Failed, Error: message}
}

// Event is a transition of an operation.
type Event struct {
	// Store is the name of the store, like "catalog".
	Store string

	// Operation is the name of the operation, like "fetch".
	Operation string

	Status
}

// Observer receives transitions. It is called after the state is updated.
//
// Observer should not call the store which emits the event.
type Observer func(Event)

// Notify calls o if it is not nil.
func (o Observer) Notify(store string, operation string, status Status) {
	if o == nil {
		return
	}
	o(Event{Store: store, Operation: operation, Status: status})
}

// Sequence issues request numbers for an operation.
//
// A response is applied only when it answers the latest request.
// Owners call Next and Latest while holding the lock of the status they guard.
type Sequence struct {
	n atomic.Uint64
}

// Next issues a new request number. Requests issued before are superseded.
func (s *Sequence) Next() uint64 {
	return s.n.Add(1)
}

// Latest reports whether n is the last issued number.
func (s *Sequence) Latest(n uint64) bool {
	return s.n.Load() == n
}
