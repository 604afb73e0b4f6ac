// Command fhistogram draws a histogram of set bits per bit position over the
// bytes of every file under the given paths.
//
// Usage:
//
//	fhistogram [-n INT] [--live] paths...
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/dendrascience/fscan/internal/cmd"
	"github.com/dendrascience/fscan/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	histCmd := cmd.NewHistogramCmd()
	histCmd.Use = "fhistogram [-n INT] paths..."
	histCmd.Version = version.GetFullVersion()
	histCmd.SilenceUsage = true

	if err := fang.Execute(ctx, histCmd); err != nil {
		os.Exit(1)
	}
}
