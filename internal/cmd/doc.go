// Package cmd provides the command-line interface implementation for fscan.
//
// It uses the Cobra library for command structure; the binaries run the
// commands through Fang for styled help and errors.
//
// Each subcommand lives in its own file with a constructor returning a
// *cobra.Command:
//   - grep: fixed-string search
//   - histogram: bit-position histogram
//   - hash: SHA-256 digests and duplicate detection
//   - count: file counting
//   - seed: test tree generation
//
// The scanning commands share the flags in scanflags.go and hand the real
// work to the scan package.
package cmd
