package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/dendrascience/fscan/scan"
	"github.com/spf13/cobra"
)

// scanFlags are the options shared by every subcommand that drives a scan.
type scanFlags struct {
	threads   int
	queueSize int
	noFollow  bool
	report    string
	verbose   bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.threads, "threads", "n", 1, "Number of worker goroutines")
	cmd.Flags().IntVar(&f.queueSize, "queue-size", scan.DefaultQueueCapacity, "Capacity of the job queue between walker and workers")
	cmd.Flags().BoolVar(&f.noFollow, "no-follow", false, "Do not follow symbolic links")
	cmd.Flags().StringVar(&f.report, "report", "", "Write a JSON run report to this file")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")
}

func (f *scanFlags) validate() error {
	if f.threads < 1 {
		return fmt.Errorf("invalid thread count: %d", f.threads)
	}
	if f.queueSize < 1 {
		return fmt.Errorf("invalid queue size: %d", f.queueSize)
	}
	return nil
}

// runScan drives one scan and writes the optional report. A report that
// cannot be written is logged, not returned.
func (f *scanFlags) runScan(cmd *cobra.Command, roots []string, handle scan.Handler, result func() any) (scan.Stats, error) {
	if len(roots) == 0 {
		roots = []string{"."}
	}
	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)

	started := time.Now()
	stats, err := scan.Run(cmd.Context(), scan.Options{
		Roots:          roots,
		Workers:        f.threads,
		QueueCapacity:  f.queueSize,
		FollowSymlinks: !f.noFollow,
		Verbose:        f.verbose,
		Logger:         logger,
	}, handle)

	if f.report != "" {
		report := scan.NewReport(cmd.Name(), roots, started, stats, result())
		if werr := scan.WriteJSONFile(f.report, report); werr != nil {
			logger.Printf("Warning: Failed to write report: %v", werr)
		} else if f.verbose {
			logger.Printf("report written to %s", f.report)
		}
	}
	return stats, err
}

// isTerminal reports whether out is an interactive terminal.
func isTerminal(out any) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
