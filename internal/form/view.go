package form

import "clientes-form/internal/model"

// FieldView is what a front-end needs to draw one field.
type FieldView struct {
	Name        model.Field
	Label       string
	Type        string
	Placeholder string
	Multiline   bool
	Value       string
	Error       string
	Invalid     bool
}

// View is a render-ready snapshot of the form. When Loading is set Fields is
// empty and only a loading indicator should be drawn.
type View struct {
	Title   string
	Loading bool
	Editing bool
	ID      string
	Fields  []FieldView
}

type fieldSpec struct {
	label       string
	inputType   string
	placeholder string
	multiline   bool
}

var fieldSpecs = map[model.Field]fieldSpec{
	model.FieldName:    {label: "Nombre:", inputType: "text", placeholder: "Nombre del Cliente"},
	model.FieldCompany: {label: "Empresa:", inputType: "text", placeholder: "Empresa"},
	model.FieldEmail:   {label: "Email:", inputType: "email", placeholder: "Ej: correo@correo.com"},
	model.FieldPhone:   {label: "Teléfono:", inputType: "tel", placeholder: "Teléfono de Contacto"},
	model.FieldNotes:   {label: "Notas:", inputType: "text", placeholder: "Sobre el Cliente", multiline: true},
}

// Label returns the display label of a field.
func Label(f model.Field) string { return fieldSpecs[f].label }

// View snapshots the controller for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Loading: c.loading,
		Editing: c.record.ID != "",
		ID:      c.record.ID,
		Title:   titleNew,
	}
	if v.Editing {
		v.Title = titleEdit
	}
	if c.loading {
		return v
	}

	v.Fields = make([]FieldView, 0, len(model.Fields))
	for _, f := range model.Fields {
		spec := fieldSpecs[f]
		msg, visible := c.state.VisibleError(f)
		v.Fields = append(v.Fields, FieldView{
			Name:        f,
			Label:       spec.label,
			Type:        spec.inputType,
			Placeholder: spec.placeholder,
			Multiline:   spec.multiline,
			Value:       c.state.Values.Get(f),
			Error:       msg,
			Invalid:     visible,
		})
	}
	return v
}
