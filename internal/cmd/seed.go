package cmd

import (
	"fmt"

	"github.com/dendrascience/fscan/scan"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand.
// It generates a tree of small test files to scan.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		opts       scan.SeedOptions
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a tree of test files",
		Long: `Generate a tree of small files for exercising the scanners.

Files are spread over a YYYY/MM/DD/HH directory layout, most of them at
the deepest level. Each file holds one UUID line drawn from a small pool,
so the tree contains duplicate content for the hash command. With --needle
every Nth file gets an extra line holding that string for grep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Files < 0 {
				return fmt.Errorf("invalid file count: %d", opts.Files)
			}
			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "Generating %d test files in %s\n", opts.Files, outputPath)
			}
			stats, err := scan.SeedTree(outputPath, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %d directories\n", stats.Files, stats.Dirs)
			if opts.Needle != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%d files contain %q\n", stats.NeedleFiles, opts.Needle)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&opts.Files, "count", "c", 10000, "Number of files to generate")
	cmd.Flags().IntVar(&opts.UUIDPool, "pool", 50, "Number of distinct UUID lines")
	cmd.Flags().StringVar(&opts.Needle, "needle", "", "String to plant in some files")
	cmd.Flags().IntVar(&opts.NeedleEvery, "needle-every", 10, "Plant the needle in every Nth file")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "Seed for the directory layout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}
