// Package cli wires the command line of the client form.
package cli

import (
	"clientes-form/internal/config"
	"clientes-form/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every command needs, loaded once before it runs.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd builds the command tree. Running it without a subcommand serves
// the HTTP form.
func NewRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "clientes-form",
		Short: "Client record form for the clientes REST API",
		Long: `clientes-form renders, validates and submits client records to a REST endpoint.

By default it serves the form over HTTP. Use "tui" for the terminal form or
"submit" to send a record from a script.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			e.cfg = config.Load()
			e.log = logger.New(e.cfg.Env)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.log.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, e)
		},
	}

	root.AddCommand(newServeCmd(e))
	root.AddCommand(newTUICmd(e))
	root.AddCommand(newSubmitCmd(e))
	return root
}
