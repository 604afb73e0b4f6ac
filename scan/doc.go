// Package scan walks file trees and fans the regular files out to a pool of
// worker goroutines through a bounded jobqueue.Queue.
//
// The calling goroutine is the only producer: Run walks every root, pushes
// one job per regular file, then destroys the queue (which waits for the
// workers to drain it) and joins the workers.
//
// Handlers:
//
// A Handler is called once per file by whichever worker popped it. The
// package ships three:
//   - Grep prints every line containing a needle as path:lineno: line
//   - Histogram counts set bits per bit position across all bytes
//   - DigestIndex hashes files with SHA-256 and groups identical content
//
// Each handler guards its shared state with its own mutex. That lock is never
// taken while the queue's lock is held, so handlers and the queue cannot
// deadlock against each other.
//
// Fixtures:
//
// SeedTree generates a dated directory tree of small files for tests and
// benchmarks.
package scan
