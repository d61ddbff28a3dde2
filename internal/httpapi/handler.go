// Package httpapi exposes projects and tasks over JSON HTTP. List endpoints
// accept the filter, sort and page query parameters and answer with the
// data, its pagination meta and the applied query mapping.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/middleware"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

// Handler serves the project and task endpoints.
type Handler struct {
	store    repository.Store
	executor *listing.Executor
	exports  http.Handler
	logger   *slog.Logger
	now      func() time.Time
	mux      *http.ServeMux
}

type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithExports mounts the spreadsheet export handler.
func WithExports(exports http.Handler) Option {
	return func(h *Handler) {
		h.exports = exports
	}
}

// WithClock overrides the clock used by validation.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler builds the router.
func NewHandler(store repository.Store, executor *listing.Executor, opts ...Option) *Handler {
	h := &Handler{
		store:    store,
		executor: executor,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		mux:      http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.mux.HandleFunc("GET /projects", h.listProjects)
	h.mux.HandleFunc("POST /projects", h.createProject)
	h.mux.HandleFunc("GET /projects/{id}", h.showProject)
	h.mux.HandleFunc("GET /tasks", h.listTasks)
	h.mux.HandleFunc("POST /tasks", h.createTask)
	h.mux.HandleFunc("GET /tasks/{id}", h.showTask)
	if h.exports != nil {
		h.mux.Handle("GET /projects/export", h.exports)
		h.mux.Handle("GET /tasks/export", h.exports)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if middleware.LoadersFromContext(r.Context()) == nil {
		middleware.DataLoaderMiddleware(h.store)(h.mux).ServeHTTP(w, r)
		return
	}
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) builder(r *http.Request) resourceBuilder {
	return resourceBuilder{loaders: middleware.LoadersFromContext(r.Context())}
}

// appliedParams is the mapping echoed back to the client; an empty mapping
// is reported as null.
func appliedParams(params listing.QueryParams) listing.QueryParams {
	if len(params) == 0 {
		return nil
	}
	return params
}
