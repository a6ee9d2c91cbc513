package tui

import (
	"context"
	"fmt"
	"io"

	"clientes-form/internal/clientapi"
	"clientes-form/internal/form"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Run starts the terminal form and blocks until it quits. It returns the
// route navigated to, or "" when the user left without saving.
func Run(ctx context.Context, api clientapi.API, check form.CheckFunc, log *zap.Logger, id string, in io.Reader, out io.Writer) (string, error) {
	m := New(api, check, log, id)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("run terminal form: %w", err)
	}
	return final.(*Model).Navigated(), nil
}
