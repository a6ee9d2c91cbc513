package form

import (
	"maps"

	"clientes-form/internal/model"
)

// State is the full form state. Values hold what was typed, Touched the
// fields that lost focus at least once, Errors the current rule failures.
type State struct {
	Values  model.Values
	Touched map[model.Field]bool
	Errors  map[model.Field]string
}

// VisibleError returns the message to show for f. Errors of untouched fields
// stay hidden.
func (s State) VisibleError(f model.Field) (string, bool) {
	msg, failing := s.Errors[f]
	if !failing || !s.Touched[f] {
		return "", false
	}
	return msg, true
}

// Valid reports whether no field fails validation.
func (s State) Valid() bool { return len(s.Errors) == 0 }

func (s State) clone() State {
	return State{
		Values:  s.Values,
		Touched: maps.Clone(s.Touched),
		Errors:  maps.Clone(s.Errors),
	}
}

// EventKind selects a transition.
type EventKind int

const (
	// EventInit replaces the state with Values, untouched.
	EventInit EventKind = iota
	// EventChange sets Field to Value.
	EventChange
	// EventBlur marks Field touched.
	EventBlur
	// EventSubmitAttempt marks every field touched.
	EventSubmitAttempt
	// EventReset blanks every field.
	EventReset
)

// Event is an input to Reduce.
type Event struct {
	Kind   EventKind
	Field  model.Field
	Value  string
	Values model.Values
}

// CheckFunc validates a whole record.
type CheckFunc func(model.Values) map[model.Field]string

// Reduce applies ev to s and returns the next state. s is not modified.
// Change, blur and submit attempts re-run the full rule set; init and reset
// leave errors empty until the next of those.
func Reduce(s State, ev Event, check CheckFunc) State {
	next := s.clone()
	switch ev.Kind {
	case EventInit:
		return State{Values: ev.Values}
	case EventReset:
		return State{}
	case EventChange:
		next.Values = next.Values.Set(ev.Field, ev.Value)
	case EventBlur:
		next.Touched = touch(next.Touched, ev.Field)
	case EventSubmitAttempt:
		for _, f := range model.Fields {
			next.Touched = touch(next.Touched, f)
		}
	}
	next.Errors = check(next.Values)
	return next
}

func touch(touched map[model.Field]bool, f model.Field) map[model.Field]bool {
	if touched == nil {
		touched = make(map[model.Field]bool)
	}
	touched[f] = true
	return touched
}

// diffErrors lists the fields whose error changed between two states.
func diffErrors(prev, next map[model.Field]string) []model.Field {
	var changed []model.Field
	for _, f := range model.Fields {
		if prev[f] != next[f] {
			changed = append(changed, f)
		}
	}
	return changed
}
