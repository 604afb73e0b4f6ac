package cmd

import (
	"github.com/dendrascience/fscan/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the fscan CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fscan",
		Short: "fscan - parallel file-tree scanning",
		Long: `fscan walks file trees and processes every regular file on a pool of
worker goroutines fed through a bounded job queue.

Use subcommands to perform different operations:
  - grep: Print lines containing a fixed string
  - histogram: Count set bits per bit position
  - hash: Hash files and find duplicate content
  - count: Count files
  - seed: Generate a tree of test files
  - version: Print build information`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	groupScanning := "scanning"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupScanning,
		Title: "Scanning Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	grepCmd := NewGrepCmd()
	histogramCmd := NewHistogramCmd()
	hashCmd := NewHashCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	grepCmd.GroupID = groupScanning
	histogramCmd.GroupID = groupScanning
	hashCmd.GroupID = groupScanning
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(grepCmd)
	rootCmd.AddCommand(histogramCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
