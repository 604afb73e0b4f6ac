// Package main provides the fscan command-line interface.
//
// fscan walks directory trees on one goroutine and hands every regular file
// to a pool of workers through a bounded blocking queue. On interrupt the
// walk stops, files already queued are still processed, and the workers are
// joined before exit.
//
// The main binary supports multiple subcommands:
//   - grep: Print lines containing a fixed string
//   - histogram: Count set bits per bit position across all bytes
//   - hash: Hash files and report duplicate content
//   - count: Count files in directory trees
//   - seed: Generate a tree of test files
package main
