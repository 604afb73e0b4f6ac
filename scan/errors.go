package scan

import "errors"

// Sentinel errors for package scan.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Driver configuration errors
	ErrInvalidWorkers = errors.New("worker count must be at least 1")
	ErrNoRoots        = errors.New("no paths to scan")

	// Handler errors
	ErrEmptyNeedle  = errors.New("search string must not be empty")
	ErrExpectedFile = errors.New("expected file, got directory")
)
