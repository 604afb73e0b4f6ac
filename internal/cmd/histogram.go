package cmd

import (
	"github.com/dendrascience/fscan/scan"
	"github.com/spf13/cobra"
)

// NewHistogramCmd creates and returns the histogram subcommand.
func NewHistogramCmd() *cobra.Command {
	var (
		flags scanFlags
		live  bool
	)

	cmd := &cobra.Command{
		Use:   "histogram [PATH...]",
		Short: "Count set bits per bit position across files",
		Long: `Build a histogram of how often each of the 8 bit positions is set across
every byte of every regular file under the given paths.

Each worker counts a file on its own and merges the result into the shared
totals. With --live on a terminal the histogram is redrawn in place after
every file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			h := scan.NewHistogram(out, live && isTerminal(out))
			_, err := flags.runScan(cmd, args, h.Handle, func() any { return h.Result() })
			if ferr := h.Finish(); ferr != nil && err == nil {
				err = ferr
			}
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&live, "live", false, "Redraw the histogram after every file (terminal only)")

	return cmd
}
