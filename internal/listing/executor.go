package listing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

const (
	defaultPerPage    = 10
	defaultOnEachSide = 1
)

// Executor maps a QueryParams mapping onto a Page.
type Executor struct {
	perPage    int
	onEachSide int
	logger     *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithPerPage sets the fixed page size.
func WithPerPage(size int) Option {
	return func(x *Executor) {
		if size > 0 {
			x.perPage = size
		}
	}
}

// WithOnEachSide sets how many numbered links surround the current page.
func WithOnEachSide(n int) Option {
	return func(x *Executor) {
		if n >= 0 {
			x.onEachSide = n
		}
	}
}

// WithLogger sets the logger used for debug query traces.
func WithLogger(logger *slog.Logger) Option {
	return func(x *Executor) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// NewExecutor creates an executor with a page size of 10 and a one-page
// link window on each side.
func NewExecutor(opts ...Option) *Executor {
	x := &Executor{
		perPage:    defaultPerPage,
		onEachSide: defaultOnEachSide,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// PerPage returns the configured page size.
func (x *Executor) PerPage() int {
	return x.perPage
}

// Request is one list invocation.
type Request struct {
	Resource Resource
	// Path is the URL path pagination links point at.
	Path   string
	Params QueryParams
	// Scope holds filters implied by the route rather than the query string;
	// they narrow the result but never appear in link URLs.
	Scope []Filter
}

// Execute runs req against src. Malformed parameters degrade to defaults;
// only store failures are returned as errors.
func Execute[T any](ctx context.Context, x *Executor, req Request, src Source[T]) (Page[T], error) {
	criteria := req.Resource.Criteria(req.Params).With(req.Scope...)

	src, err := Pin(ctx, src)
	if err != nil {
		return Page[T]{}, fmt.Errorf("snapshot %s: %w", req.Resource.Name, err)
	}

	total, err := src.Count(ctx, criteria)
	if err != nil {
		return Page[T]{}, fmt.Errorf("count %s: %w", req.Resource.Name, err)
	}

	meta := x.Meta(req.Path, req.Params, total)
	offset := (meta.CurrentPage - 1) * meta.PerPage

	items, err := src.Find(ctx, criteria, meta.PerPage, offset)
	if err != nil {
		return Page[T]{}, fmt.Errorf("find %s: %w", req.Resource.Name, err)
	}
	if items == nil {
		items = []T{}
	}
	if len(items) > 0 {
		meta.From = offset + 1
		meta.To = offset + len(items)
	}

	x.logger.DebugContext(ctx, "list query executed",
		"resource", req.Resource.Name,
		"filters", len(criteria.Filters),
		"sort_field", criteria.Sort.Column,
		"sort_direction", string(criteria.Sort.Direction),
		"page", meta.CurrentPage,
		"total", total,
	)

	return Page[T]{Data: items, Meta: meta}, nil
}

// Meta computes pagination metadata for total matching rows. The requested
// page is clamped into [1, last page].
func (x *Executor) Meta(path string, params QueryParams, total int) PageMeta {
	if total < 0 {
		total = 0
	}
	lastPage := (total + x.perPage - 1) / x.perPage
	if lastPage < 1 {
		lastPage = 1
	}
	current := clampPage(RequestedPage(params), lastPage)

	return PageMeta{
		CurrentPage: current,
		LastPage:    lastPage,
		PerPage:     x.perPage,
		Total:       total,
		Path:        path,
		Links:       x.Links(path, params, current, lastPage),
	}
}

// RequestedPage reads the page parameter; anything that is not a positive
// integer means page 1.
func RequestedPage(params QueryParams) int {
	raw, ok := params.Get(ParamPage)
	if !ok {
		return 1
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func clampPage(page, lastPage int) int {
	if page < 1 {
		return 1
	}
	if page > lastPage {
		return lastPage
	}
	return page
}
