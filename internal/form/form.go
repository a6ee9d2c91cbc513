// Package form implements the client record form: its state, validation
// triggers and the submission workflow shared by every front-end.
package form

import (
	"context"
	"sync"
	"sync/atomic"

	"clientes-form/internal/clientapi"
	"clientes-form/internal/model"

	"go.uber.org/zap"
)

// ListRoute is where a successful submission navigates to.
const ListRoute = "/clientes"

const (
	titleNew  = "Agregar Cliente"
	titleEdit = "Editar Cliente"
)

// Navigator changes the current route.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

// Navigate calls f(path).
func (f NavigatorFunc) Navigate(path string) { f(path) }

// Outcome is the result of a submit.
type Outcome int

const (
	// Invalid means validation failed; errors are now visible on every field.
	Invalid Outcome = iota
	// Succeeded means the record was sent, navigation happened and the form
	// was reset.
	Succeeded
	// Failed means the call failed; the error was logged and the form kept.
	Failed
	// Busy means another submit was still in flight; nothing was sent.
	Busy
)

func (o Outcome) String() string {
	switch o {
	case Invalid:
		return "invalid"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Busy:
		return "busy"
	}
	return "unknown"
}

// Controller owns the state of one form. It is safe for concurrent use.
type Controller struct {
	api   clientapi.API
	nav   Navigator
	check CheckFunc
	log   *zap.Logger

	mu       sync.Mutex
	record   model.Client
	loading  bool
	state    State
	gen      uint64 // bumped by Initialize
	inFlight atomic.Bool
}

// New creates a Controller for a blank record.
func New(api clientapi.API, nav Navigator, check CheckFunc, logger *zap.Logger) *Controller {
	return &Controller{api: api, nav: nav, check: check, log: logger}
}

// Initialize replaces the form state with record's fields, or blanks when
// record is nil. It always discards the current state, touched fields
// included. While loading is true the form has no fields to show.
func (c *Controller) Initialize(record *model.Client, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	c.loading = loading
	c.record = model.Client{}
	if record != nil {
		c.record = *record
	}
	c.state = Reduce(c.state, Event{Kind: EventInit, Values: c.record.Values()}, c.check)
}

// Loading reports whether the form is waiting for its record.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Editing reports whether the form edits an existing record.
func (c *Controller) Editing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.ID != ""
}

// Title is the heading and submit label of the form.
func (c *Controller) Title() string {
	if c.Editing() {
		return titleEdit
	}
	return titleNew
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Change sets a field value and re-validates.
func (c *Controller) Change(f model.Field, value string) {
	c.dispatch(Event{Kind: EventChange, Field: f, Value: value})
}

// Blur marks a field touched and re-validates.
func (c *Controller) Blur(f model.Field) {
	c.dispatch(Event{Kind: EventBlur, Field: f})
}

func (c *Controller) dispatch(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return
	}
	prev := c.state
	c.state = Reduce(prev, ev, c.check)
	if changed := diffErrors(prev.Errors, c.state.Errors); len(changed) > 0 {
		c.log.Debug("form errors changed", zap.Any("fields", changed))
	}
}

// Submit runs a submit attempt. An invalid record returns Invalid without any
// call. Otherwise the record is created, or updated when it has an id; on
// success the controller navigates to ListRoute and then resets to blank
// values, unless Initialize ran in the meantime. Call failures are logged and
// swallowed.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return Invalid
	}
	c.state = Reduce(c.state, Event{Kind: EventSubmitAttempt}, c.check)
	if !c.state.Valid() {
		c.mu.Unlock()
		return Invalid
	}
	values := c.state.Values
	id := c.record.ID
	gen := c.gen
	c.mu.Unlock()

	if !c.inFlight.CompareAndSwap(false, true) {
		c.log.Warn("submit ignored, another one is in flight")
		return Busy
	}
	defer c.inFlight.Store(false)

	var err error
	if id != "" {
		err = c.api.Update(ctx, id, values)
	} else {
		err = c.api.Create(ctx, values)
	}
	if err != nil {
		c.log.Error("submit failed", zap.String("id", id), zap.Error(err))
		return Failed
	}

	c.nav.Navigate(ListRoute)

	c.mu.Lock()
	// a record loaded while the call was in flight owns the form now
	if c.gen == gen {
		c.state = Reduce(c.state, Event{Kind: EventReset}, c.check)
	}
	c.mu.Unlock()
	return Succeeded
}
