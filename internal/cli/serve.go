package cli

import (
	"clientes-form/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, e)
		},
	}
}

func runServe(cmd *cobra.Command, e *env) error {
	return server.Run(cmd.Context(), e.cfg, e.log)
}
