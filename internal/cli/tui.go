package cli

import (
	"fmt"

	"clientes-form/internal/clientapi"
	"clientes-form/internal/tui"
	"clientes-form/internal/validation"

	"github.com/spf13/cobra"
)

func newTUICmd(e *env) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fill the form in the terminal",
		Long:  `Open the interactive terminal form. With --id the record is fetched and edited.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api := clientapi.New(e.cfg, e.log)
			route, err := tui.Run(cmd.Context(), api, validation.New().Check, e.log, id, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if route != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cliente guardado → %s\n", route)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "id of the client to edit")
	return cmd
}
