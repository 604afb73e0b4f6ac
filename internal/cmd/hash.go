package cmd

import (
	"fmt"
	"io"

	"github.com/dendrascience/fscan/scan"
	"github.com/spf13/cobra"
)

// NewHashCmd creates and returns the hash subcommand.
// It hashes files in parallel and can report duplicate content.
func NewHashCmd() *cobra.Command {
	var (
		flags      scanFlags
		duplicates bool
	)

	cmd := &cobra.Command{
		Use:   "hash [PATH...]",
		Short: "Hash files and find duplicate content",
		Long: `Compute the SHA-256 digest of every regular file under the given paths.

Each file is printed as <bucket>-<digest>  <path>. With --duplicates only
groups of files sharing the same content are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			var lines io.Writer
			if !duplicates {
				lines = cmd.OutOrStdout()
			}
			idx := scan.NewDigestIndex(lines)
			stats, err := flags.runScan(cmd, args, idx.Handle, func() any { return idx.Result() })

			if duplicates {
				printDuplicates(cmd.OutOrStdout(), idx.Duplicates())
			}
			if flags.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d unique digests\n", stats.Files, idx.Len())
			}
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "Only print groups of files with identical content")

	return cmd
}

func printDuplicates(w io.Writer, sets []scan.DuplicateSet) {
	for _, set := range sets {
		fmt.Fprintf(w, "%s (%d files)\n", scan.HashPathFromHash(set.Digest), len(set.Paths))
		for _, path := range set.Paths {
			fmt.Fprintf(w, "  %s\n", path)
		}
	}
}
