// Package render draws the HTML pages of the form service.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"clientes-form/internal/form"
	"clientes-form/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageForm    = "form.html"
	pageList    = "list.html"
	pageMessage = "message.html"
)

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. Each page is parsed together with the
// layout and the shared partials.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageForm, pageList, pageMessage} {
		tmpl, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/partials.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// FormPage is the data of the form page.
type FormPage struct {
	Title  string
	Action string
	Form   form.View
}

// ListPage is the data of the listing page.
type ListPage struct {
	Title   string
	Clients []model.Client
}

// MessagePage shows a single alert under a heading.
type MessagePage struct {
	Title   string
	Message string
}

// Form writes the form page. action is where the form posts to.
func (r *Renderer) Form(w http.ResponseWriter, status int, view form.View, action string) error {
	return r.execute(w, status, pageForm, FormPage{Title: view.Title, Action: action, Form: view})
}

// List writes the listing page.
func (r *Renderer) List(w http.ResponseWriter, clients []model.Client) error {
	return r.execute(w, http.StatusOK, pageList, ListPage{Title: "Clientes", Clients: clients})
}

// Message writes a page with a heading and one alert.
func (r *Renderer) Message(w http.ResponseWriter, status int, title, message string) error {
	return r.execute(w, status, pageMessage, MessagePage{Title: title, Message: message})
}

func (r *Renderer) execute(w http.ResponseWriter, status int, page string, data any) error {
	// render to a buffer so a template error does not leave a half-written 200
	var buf bytes.Buffer
	if err := r.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
