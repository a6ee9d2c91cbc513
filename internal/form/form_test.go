package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clientes-form/internal/apperror"
	"clientes-form/internal/model"
	"clientes-form/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type call struct {
	Op     string
	ID     string
	Values model.Values
}

type mockAPI struct {
	mu    sync.Mutex
	calls []call
	err   error
	block chan struct{}
}

func (m *mockAPI) record(c call) error {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	m.mu.Unlock()
	if m.block != nil {
		<-m.block
	}
	return m.err
}

func (m *mockAPI) Create(_ context.Context, values model.Values) error {
	return m.record(call{Op: "create", Values: values})
}

func (m *mockAPI) Update(_ context.Context, id string, values model.Values) error {
	return m.record(call{Op: "update", ID: id, Values: values})
}

func (m *mockAPI) Get(context.Context, string) (*model.Client, error) { return nil, apperror.ErrNotFound }

func (m *mockAPI) List(context.Context) ([]model.Client, error) { return nil, nil }

func (m *mockAPI) Calls() []call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]call(nil), m.calls...)
}

type mockNavigator struct {
	paths []string
	// state seen at navigation time, to check ordering against the reset
	values []model.Values
	ctrl   *Controller
}

func (n *mockNavigator) Navigate(path string) {
	n.paths = append(n.paths, path)
	if n.ctrl != nil {
		n.values = append(n.values, n.ctrl.State().Values)
	}
}

func newController(api *mockAPI) (*Controller, *mockNavigator, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	nav := &mockNavigator{}
	c := New(api, nav, validation.New().Check, zap.New(core))
	nav.ctrl = c
	return c, nav, logs
}

func fill(c *Controller, v model.Values) {
	for _, f := range model.Fields {
		c.Change(f, v.Get(f))
	}
}

var valid = model.Values{Name: "Acme Corp", Company: "Acme SA", Email: "a@b.com", Phone: "5512345678", Notes: "vip"}

func TestInitialize_NewRecord(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	c.Initialize(&model.Client{}, false)

	assert.Equal(t, "Agregar Cliente", c.Title())
	assert.False(t, c.Editing())
	assert.False(t, c.Loading())
	assert.Equal(t, model.Values{}, c.State().Values)
}

func TestInitialize_EditRecord(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	c.Initialize(&model.Client{ID: "123", Name: "Acme"}, false)

	assert.Equal(t, "Editar Cliente", c.Title())
	assert.True(t, c.Editing())
	assert.Equal(t, model.Values{Name: "Acme"}, c.State().Values)
}

func TestInitialize_NilRecordIsBlank(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	c.Initialize(nil, false)

	assert.Equal(t, "Agregar Cliente", c.Title())
	assert.Equal(t, model.Values{}, c.State().Values)
}

func TestInitialize_ReplacesTouchedState(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	c.Initialize(nil, false)
	c.Change(model.FieldName, "x")
	c.Blur(model.FieldName)
	require.NotEmpty(t, c.State().Touched)

	c.Initialize(&model.Client{ID: "9", Name: "Globex", Email: "g@globex.com"}, false)

	s := c.State()
	assert.Equal(t, model.Values{Name: "Globex", Email: "g@globex.com"}, s.Values)
	assert.Empty(t, s.Touched)
	assert.Empty(t, s.Errors)
	assert.Equal(t, "Editar Cliente", c.Title())
}

func TestLoading_IgnoresInput(t *testing.T) {
	api := &mockAPI{}
	c, nav, _ := newController(api)
	c.Initialize(&model.Client{ID: "1", Name: "Acme"}, true)

	c.Change(model.FieldName, "changed")
	assert.Equal(t, Invalid, c.Submit(context.Background()))

	assert.True(t, c.Loading())
	assert.Equal(t, "Acme", c.State().Values.Name)
	assert.Empty(t, api.Calls())
	assert.Empty(t, nav.paths)
}

func TestChange_ErrorsHiddenUntilTouched(t *testing.T) {
	c, _, _ := newController(&mockAPI{})
	c.Initialize(nil, false)

	c.Change(model.FieldName, "ab")
	_, visible := c.State().VisibleError(model.FieldName)
	assert.False(t, visible)

	c.Blur(model.FieldName)
	msg, visible := c.State().VisibleError(model.FieldName)
	assert.True(t, visible)
	assert.Equal(t, "El nombre es muy corto", msg)

	c.Change(model.FieldName, "abc")
	_, visible = c.State().VisibleError(model.FieldName)
	assert.False(t, visible)
}

func TestSubmit_InvalidTouchesEverything(t *testing.T) {
	api := &mockAPI{}
	c, nav, logs := newController(api)
	c.Initialize(nil, false)

	outcome := c.Submit(context.Background())

	assert.Equal(t, Invalid, outcome)
	assert.Empty(t, api.Calls())
	assert.Empty(t, nav.paths)
	msg, visible := c.State().VisibleError(model.FieldEmail)
	assert.True(t, visible)
	assert.Equal(t, "El email es obligatorio", msg)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len(), "validation failures are not logged as errors")
}

func TestSubmit_CreatesNewRecord(t *testing.T) {
	api := &mockAPI{}
	c, nav, _ := newController(api)
	c.Initialize(&model.Client{}, false)
	fill(c, valid)

	outcome := c.Submit(context.Background())

	assert.Equal(t, Succeeded, outcome)
	assert.Equal(t, []call{{Op: "create", Values: valid}}, api.Calls())
	assert.Equal(t, []string{"/clientes"}, nav.paths)
	assert.Equal(t, []model.Values{valid}, nav.values, "navigation happens before the reset")
	assert.Equal(t, State{}, c.State())
}

func TestSubmit_UpdatesExistingRecord(t *testing.T) {
	api := &mockAPI{}
	c, nav, _ := newController(api)
	c.Initialize(&model.Client{ID: "42", Name: "Acme Corp", Company: "Acme SA", Email: "a@b.com"}, false)
	c.Change(model.FieldPhone, "5512345678")

	outcome := c.Submit(context.Background())

	assert.Equal(t, Succeeded, outcome)
	assert.Equal(t, []call{{
		Op:     "update",
		ID:     "42",
		Values: model.Values{Name: "Acme Corp", Company: "Acme SA", Email: "a@b.com", Phone: "5512345678"},
	}}, api.Calls())
	assert.Equal(t, []string{"/clientes"}, nav.paths)
	assert.Equal(t, model.Values{}, c.State().Values)
	assert.Equal(t, "Editar Cliente", c.Title(), "reset keeps the record being edited")
}

func TestSubmit_FailureIsLoggedAndSwallowed(t *testing.T) {
	api := &mockAPI{err: &apperror.NetworkFailure{Op: "create", Err: errors.New("connection refused")}}
	c, nav, logs := newController(api)
	c.Initialize(nil, false)
	fill(c, valid)

	outcome := c.Submit(context.Background())

	assert.Equal(t, Failed, outcome)
	assert.Empty(t, nav.paths)
	assert.Equal(t, valid, c.State().Values, "form keeps its values")

	entries := logs.FilterMessage("submit failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}

func TestSubmit_SecondSubmitWhileInFlightIsBusy(t *testing.T) {
	api := &mockAPI{block: make(chan struct{})}
	c, nav, _ := newController(api)
	c.Initialize(nil, false)
	fill(c, valid)

	first := make(chan Outcome, 1)
	go func() { first <- c.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return len(api.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, Busy, c.Submit(context.Background()))
	close(api.block)

	assert.Equal(t, Succeeded, <-first)
	assert.Len(t, api.Calls(), 1)
	assert.Equal(t, []string{"/clientes"}, nav.paths)
}

func TestSubmit_KeepsRecordInitializedWhileInFlight(t *testing.T) {
	api := &mockAPI{block: make(chan struct{})}
	c, nav, _ := newController(api)
	c.Initialize(nil, false)
	fill(c, valid)

	done := make(chan Outcome, 1)
	go func() { done <- c.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return len(api.Calls()) == 1 }, time.Second, 5*time.Millisecond)

	c.Initialize(&model.Client{ID: "7", Name: "Globex", Email: "g@globex.com"}, false)
	close(api.block)

	assert.Equal(t, Succeeded, <-done)
	assert.Equal(t, []string{"/clientes"}, nav.paths)
	assert.Equal(t, model.Values{Name: "Globex", Email: "g@globex.com"}, c.State().Values)
	assert.Equal(t, "Editar Cliente", c.Title())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "busy", Busy.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestNavigatorFunc(t *testing.T) {
	var got string
	NavigatorFunc(func(p string) { got = p }).Navigate("/clientes")
	assert.Equal(t, "/clientes", got)
}
