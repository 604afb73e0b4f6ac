package jobqueue

import "errors"

// Sentinel errors for package jobqueue.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Invalid arguments
	ErrNilQueue        = errors.New("jobqueue: nil queue")
	ErrNotInitialized  = errors.New("jobqueue: queue was not created with New")
	ErrInvalidCapacity = errors.New("jobqueue: capacity must be at least 1")

	// Shutdown
	ErrClosed  = errors.New("jobqueue: queue is closed")
	ErrDrained = errors.New("jobqueue: queue is closed and drained")
)
