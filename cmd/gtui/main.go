package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "gtui error:", err)
		os.Exit(1)
	}
}

// run executes the command line. An interrupt cancels the context handed to
// subcommands, so `gtui ls` stops reading metadata on Ctrl-C.
func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand(args).ExecuteContext(ctx)
}
