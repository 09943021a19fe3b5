// Command cantine is the ingest and maintenance CLI for a cantine data
// directory: load streams records in, check verifies them back out, and
// info reports a corpus-wide snapshot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "cantine",
		Short: "Load, verify and inspect a cantine data directory",
	}

	root.AddCommand(newLoadCmd(), newCheckCmd(), newInfoCmd())

	return root.ExecuteContext(ctx)
}
