package cli

import (
	"errors"
	"fmt"

	"clientes-form/internal/clientapi"
	"clientes-form/internal/form"
	"clientes-form/internal/model"
	"clientes-form/internal/validation"

	"github.com/spf13/cobra"
)

// errNotSaved is returned when the record was not sent; details are already
// printed or logged.
var errNotSaved = errors.New("client not saved")

func newSubmitCmd(e *env) *cobra.Command {
	var (
		id     string
		values model.Values
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and send one client record",
		Long: `Validate the record given by flags and send it to the API.
With --id the record is updated, otherwise it is created.`,
		Example: `  clientes-form submit --name "Acme Corp" --company "Acme SA" --email a@b.com --phone 5512345678`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			api := clientapi.New(e.cfg, e.log)
			ctrl := form.New(api, form.NavigatorFunc(func(path string) {
				fmt.Fprintf(out, "Cliente guardado → %s\n", path)
			}), validation.New().Check, e.log)

			ctrl.Initialize(&model.Client{ID: id}, false)
			for _, f := range model.Fields {
				ctrl.Change(f, values.Get(f))
			}

			switch ctrl.Submit(cmd.Context()) {
			case form.Succeeded:
				return nil
			case form.Invalid:
				state := ctrl.State()
				for _, f := range model.Fields {
					if msg, ok := state.VisibleError(f); ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", form.Label(f), msg)
					}
				}
				return fmt.Errorf("invalid record: %w", errNotSaved)
			default:
				return errNotSaved
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&id, "id", "", "id of the client to update")
	flags.StringVar(&values.Name, "name", "", "client name")
	flags.StringVar(&values.Company, "company", "", "company name")
	flags.StringVar(&values.Email, "email", "", "contact email")
	flags.StringVar(&values.Phone, "phone", "", "contact phone")
	flags.StringVar(&values.Notes, "notes", "", "free-form notes")
	return cmd
}
