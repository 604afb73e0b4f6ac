package cmd

import (
	"fmt"

	"github.com/dendrascience/fscan/scan"
	"github.com/spf13/cobra"
)

// NewGrepCmd creates and returns the grep subcommand.
// It prints every line under the given paths that contains a fixed string.
func NewGrepCmd() *cobra.Command {
	var flags scanFlags

	cmd := &cobra.Command{
		Use:   "grep STRING [PATH...]",
		Short: "Search files for a fixed string in parallel",
		Long: `Search every regular file under the given paths for lines containing STRING.

Matches are printed as path:lineno: line. Files are read by a pool of
worker goroutines fed from a bounded queue; use -n to set the pool size.
Paths default to the current directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			g, err := scan.NewGrep(args[0], cmd.OutOrStdout())
			if err != nil {
				return err
			}
			stats, err := flags.runScan(cmd, args[1:], g.Handle, func() any { return g.Result() })
			if flags.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d matches in %d of %d files\n", g.Matches(), g.MatchedFiles(), stats.Files)
			}
			return err
		},
	}
	flags.register(cmd)

	return cmd
}
