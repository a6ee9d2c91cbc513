// Package handler contains the HTTP handlers of the client form service.
package handler

import (
	"errors"
	"net/http"
	"time"

	"clientes-form/internal/apperror"
	"clientes-form/internal/clientapi"
	"clientes-form/internal/form"
	"clientes-form/internal/model"
	"clientes-form/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxFormBytes bounds the size of a posted form.
const maxFormBytes = 64 << 10

// Handler wraps HTTP handlers with logger, API client and renderer.
type Handler struct {
	log   *zap.Logger
	api   clientapi.API
	check form.CheckFunc
	views *render.Renderer
}

// New creates a new Handler instance.
func New(log *zap.Logger, api clientapi.API, check form.CheckFunc, views *render.Renderer) *Handler {
	return &Handler{log: log, api: api, check: check, views: views}
}

// Routes mounts every handler on a chi router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Get("/healthz", h.Healthz)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, form.ListRoute, http.StatusFound)
	})
	r.Route(form.ListRoute, func(r chi.Router) {
		r.Get("/", h.ListClients)
		r.Get("/nuevo", h.NewClientForm)
		r.Post("/nuevo", h.SubmitClient)
		r.Get("/editar/{id}", h.EditClientForm)
		r.Post("/editar/{id}", h.SubmitClient)
	})
	return r
}

// Healthz is a simple health check endpoint.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// ListClients renders every client known to the API.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.api.List(r.Context())
	if err != nil {
		h.log.Error("failed to list clients", zap.Error(err))
		h.message(w, http.StatusBadGateway, "Clientes", "No se pudieron cargar los clientes")
		return
	}
	if err := h.views.List(w, clients); err != nil {
		h.log.Error("unable to render client list", zap.Error(err))
	}
}

// NewClientForm renders a blank form.
func (h *Handler) NewClientForm(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(nil)
	ctrl.Initialize(&model.Client{}, false)
	h.form(w, http.StatusOK, ctrl, r.URL.Path)
}

// EditClientForm fetches the record and renders it in the form.
func (h *Handler) EditClientForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := h.api.Get(r.Context(), id)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		h.message(w, http.StatusNotFound, "Editar Cliente", "Cliente no válido")
		return
	case err != nil:
		h.log.Error("failed to fetch client", zap.String("id", id), zap.Error(err))
		h.message(w, http.StatusBadGateway, "Editar Cliente", "No se pudo cargar el cliente")
		return
	}

	ctrl := h.controller(nil)
	ctrl.Initialize(record, false)
	h.form(w, http.StatusOK, ctrl, r.URL.Path)
}

// SubmitClient handles a posted form. The id route parameter, when present,
// selects update over create.
func (h *Handler) SubmitClient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		h.log.Warn("failed to parse form", zap.Error(err))
		h.message(w, http.StatusBadRequest, "Clientes", "Formulario no válido")
		return
	}

	var target string
	ctrl := h.controller(form.NavigatorFunc(func(path string) { target = path }))
	ctrl.Initialize(&model.Client{ID: chi.URLParam(r, "id")}, false)
	for _, f := range model.Fields {
		ctrl.Change(f, r.PostForm.Get(string(f)))
	}

	switch ctrl.Submit(r.Context()) {
	case form.Succeeded:
		http.Redirect(w, r, target, http.StatusSeeOther)
	case form.Invalid:
		h.form(w, http.StatusUnprocessableEntity, ctrl, r.URL.Path)
	default:
		h.form(w, http.StatusOK, ctrl, r.URL.Path)
	}
}

func (h *Handler) controller(nav form.Navigator) *form.Controller {
	if nav == nil {
		nav = form.NavigatorFunc(func(string) {})
	}
	return form.New(h.api, nav, h.check, h.log)
}

func (h *Handler) form(w http.ResponseWriter, status int, ctrl *form.Controller, action string) {
	if err := h.views.Form(w, status, ctrl.View(), action); err != nil {
		h.log.Error("unable to render form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) message(w http.ResponseWriter, status int, title, msg string) {
	if err := h.views.Message(w, status, title, msg); err != nil {
		h.log.Error("unable to render message", zap.Error(err))
	}
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}
