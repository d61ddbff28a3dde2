// Package navigator owns the single in-flight request slot of a list view.
// Every visit supersedes the one before it; only the newest response is
// ever applied.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/querystate"
)

// ErrSuperseded is returned by Visit when a newer visit started before the
// response arrived. The response has been discarded.
var ErrSuperseded = errors.New("navigation superseded by a newer visit")

// Response is a decoded list response.
type Response struct {
	URL         string
	Data        []jsoniter.RawMessage
	Meta        listing.PageMeta
	QueryParams listing.QueryParams
}

// Dispatcher performs the round trip for an intent.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent querystate.Intent) (Response, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, intent querystate.Intent) (Response, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, intent querystate.Intent) (Response, error) {
	return f(ctx, intent)
}

// View is what the screen shows: the query state and the page it produced.
type View struct {
	State    querystate.State
	Response Response
}

// Navigator serializes visits. It is safe for concurrent use.
type Navigator struct {
	dispatcher Dispatcher
	logger     *slog.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current View
	history []string
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a navigator showing initial.
func New(dispatcher Dispatcher, initial querystate.State, opts ...Option) *Navigator {
	n := &Navigator{
		dispatcher: dispatcher,
		logger:     slog.New(slog.DiscardHandler),
		current:    View{State: initial},
		history:    []string{initial.URL()},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Current returns the last applied view.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// History returns the visited URLs, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

// Visit dispatches intent for next and applies the response if no newer
// visit has started meanwhile. The previous in-flight visit, if any, has
// its context cancelled. On failure the current view is left untouched.
func (n *Navigator) Visit(ctx context.Context, next querystate.State, intent querystate.Intent) (View, error) {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	if n.cancel != nil {
		n.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.mu.Unlock()
	defer cancel()

	n.logger.DebugContext(ctx, "visit started", "seq", seq, "url", intent.URL, "replace", intent.Replace)

	resp, err := n.dispatcher.Dispatch(ctx, intent)

	n.mu.Lock()
	defer n.mu.Unlock()

	if seq != n.seq {
		n.logger.DebugContext(ctx, "visit superseded", "seq", seq, "latest", n.seq)
		return n.current, ErrSuperseded
	}
	n.cancel = nil
	if err != nil {
		n.logger.WarnContext(ctx, "visit failed", "url", intent.URL, "error", err)
		return n.current, fmt.Errorf("failed to load %s: %w", intent.URL, err)
	}

	// The server reports the mapping it applied; an out-of-range page is
	// replaced by the page it was clamped to.
	state := next.Sync(resp.QueryParams)
	if _, ok := state.Params().Get(listing.ParamPage); ok && resp.Meta.CurrentPage > 0 {
		state = state.Sync(state.Params().WithPage(resp.Meta.CurrentPage))
	}
	n.current = View{State: state, Response: resp}
	if intent.Replace && len(n.history) > 0 {
		n.history[len(n.history)-1] = intent.URL
	} else {
		n.history = append(n.history, intent.URL)
	}
	return n.current, nil
}
