// Package main provides the entry point of the client form.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"clientes-form/internal/cli"
)

// Run is the testable entrypoint for the application.
func Run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}
