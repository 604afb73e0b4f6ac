// Command fauxgrep prints lines containing a fixed string, searching files on
// several worker goroutines.
//
// Usage:
//
//	fauxgrep [-n INT] STRING paths...
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

	grepCmd := cmd.NewGrepCmd()
	grepCmd.Use = "fauxgrep [-n INT] STRING paths..."
	grepCmd.Version = version.GetFullVersion()
	grepCmd.SilenceUsage = true

	if err := fang.Execute(ctx, grepCmd); err != nil {
		os.Exit(1)
	}
}
