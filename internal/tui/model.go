// Package tui is the terminal front-end of the client form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"clientes-form/internal/apperror"
	"clientes-form/internal/clientapi"
	"clientes-form/internal/form"
	"clientes-form/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type recordLoadedMsg struct {
	record *model.Client
	err    error
}

type submitDoneMsg struct {
	outcome form.Outcome
}

// routeRecorder is the terminal Navigator: it remembers the route so the
// program can report it after quitting.
type routeRecorder struct {
	mu   sync.Mutex
	path string
}

func (r *routeRecorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
}

func (r *routeRecorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Model is the bubbletea model of the form. An empty id creates a record,
// any other id is fetched first and then edited.
type Model struct {
	ctrl    *form.Controller
	api     clientapi.API
	log     *zap.Logger
	id      string
	nav     *routeRecorder
	inputs  []textinput.Model
	focus   int
	spinner spinner.Model
	loadErr error

	submitting bool
	navigated  string
}

// New creates the model. check validates the record.
func New(api clientapi.API, check form.CheckFunc, log *zap.Logger, id string) *Model {
	nav := &routeRecorder{}
	m := &Model{
		ctrl:    form.New(api, nav, check, log),
		api:     api,
		log:     log,
		id:      id,
		nav:     nav,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.inputs = make([]textinput.Model, len(model.Fields))
	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = ""
		// no limit: lengths are the validator's business, notes are free text
		in.CharLimit = 0
		in.Width = 40
		m.inputs[i] = in
	}
	return m
}

// Navigated is the route the form navigated to, empty until a submission
// succeeded.
func (m *Model) Navigated() string { return m.navigated }

func (m *Model) Init() tea.Cmd {
	if m.id == "" {
		m.ctrl.Initialize(&model.Client{}, false)
		m.syncInputs()
		return m.inputs[m.focus].Focus()
	}
	m.ctrl.Initialize(&model.Client{ID: m.id}, true)
	return tea.Batch(m.spinner.Tick, m.loadRecord())
}

func (m *Model) loadRecord() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		record, err := m.api.Get(context.Background(), id)
		return recordLoadedMsg{record: record, err: err}
	}
}

func (m *Model) submit() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{outcome: m.ctrl.Submit(context.Background())}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLoadedMsg:
		if msg.err != nil {
			m.log.Error("failed to fetch client", zap.String("id", m.id), zap.Error(msg.err))
			m.loadErr = msg.err
			return m, nil
		}
		m.ctrl.Initialize(msg.record, false)
		m.syncInputs()
		return m, m.inputs[m.focus].Focus()

	case spinner.TickMsg:
		if !m.ctrl.Loading() || m.loadErr != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitDoneMsg:
		m.submitting = false
		if msg.outcome == form.Succeeded {
			m.navigated = m.nav.Path()
			m.syncInputs()
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, defaultKeyMap.Quit) {
			return m, tea.Quit
		}
		if m.ctrl.Loading() || m.loadErr != nil {
			return m, nil
		}
		switch {
		case key.Matches(msg, defaultKeyMap.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, defaultKeyMap.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, defaultKeyMap.Submit):
			if m.submitting {
				return m, nil
			}
			m.submitting = true
			return m, m.submit()
		}
	}

	if m.ctrl.Loading() || len(m.inputs) == 0 {
		return m, nil
	}
	field := model.Fields[m.focus]
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.ctrl.Change(field, after)
	}
	return m, cmd
}

// moveFocus leaves the current field, which marks it touched, and focuses
// the next one in direction dir.
func (m *Model) moveFocus(dir int) tea.Cmd {
	m.ctrl.Blur(model.Fields[m.focus])
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// syncInputs copies the controller values and placeholders into the text
// inputs.
func (m *Model) syncInputs() {
	for i, f := range m.ctrl.View().Fields {
		m.inputs[i].SetValue(f.Value)
		m.inputs[i].Placeholder = f.Placeholder
	}
}

func (m *Model) View() string {
	if m.loadErr != nil {
		msg := "No se pudo cargar el cliente"
		if errors.Is(m.loadErr, apperror.ErrNotFound) {
			msg = "Cliente no válido"
		}
		return alertStyle.Render(msg) + "\n\n" + helpStyle.Render("esc: salir") + "\n"
	}

	view := m.ctrl.View()
	if view.Loading {
		return fmt.Sprintf("%s Cargando...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(view.Title)) + "\n\n")
	for i, f := range view.Fields {
		indicator := "  "
		if i == m.focus {
			indicator = "> "
		}
		style := fieldStyle
		if f.Invalid {
			style = invalidFieldStyle
		}
		b.WriteString(indicator + labelStyle.Render(f.Label) + "\n")
		b.WriteString(style.Render(m.inputs[i].View()) + "\n")
		if f.Invalid {
			b.WriteString(alertStyle.Render(f.Error) + "\n")
		}
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString(helpStyle.Render("Guardando...") + "\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab: navegar  ctrl+s: " + strings.ToLower(view.Title) + "  esc: salir"))
	return b.String()
}
