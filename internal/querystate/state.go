// Package querystate holds the client side of a list view: the active
// filter, sort and page mapping, and the navigation intents that
// interactions with the view produce.
package querystate

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

// State is an immutable snapshot of a list view's query. The zero value is
// an unfiltered view with an empty path.
type State struct {
	path   string
	params listing.QueryParams
}

// New creates a state for path with a copy of params. Blank values are
// dropped.
func New(path string, params listing.QueryParams) State {
	clean := make(listing.QueryParams, len(params))
	for key, value := range params {
		clean = clean.With(key, value)
	}
	return State{path: path, params: clean}
}

// ParseURL builds a state from a path with an optional query string. A
// scheme and host, when present, are discarded.
func ParseURL(raw string) (State, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return State{}, fmt.Errorf("failed to parse list url %q: %w", raw, err)
	}
	return State{path: u.Path, params: listing.ParseQueryParams(u.Query())}, nil
}

// Path returns the list path.
func (s State) Path() string {
	return s.path
}

// Params returns a copy of the mapping.
func (s State) Params() listing.QueryParams {
	return s.params.Clone()
}

// Get returns the value of key.
func (s State) Get(key string) string {
	value, _ := s.params.Get(key)
	return value
}

// SortField returns the active sort column, if any.
func (s State) SortField() string {
	return s.Get(listing.ParamSortField)
}

// SortDirection returns the active sort direction. It is only meaningful
// when SortField is set.
func (s State) SortDirection() domain.SortDirection {
	return domain.ParseSortDirection(s.Get(listing.ParamSortDirection))
}

// Page returns the requested page, 1 when unset or malformed.
func (s State) Page() int {
	return listing.RequestedPage(s.params)
}

// URL returns the canonical path and query string for the state.
func (s State) URL() string {
	return s.params.URL(s.path)
}

// Equal reports whether both states address the same query.
func (s State) Equal(other State) bool {
	return s.path == other.path && s.params.Equal(other.params)
}

// SetFilter sets key to value, or clears it when value is blank. Any page
// selection is dropped since a changed constraint starts again at page 1.
func (s State) SetFilter(key, value string) (State, Intent) {
	next := State{path: s.path, params: s.params.With(key, value).Without(listing.ParamPage)}
	return next, next.intent(true)
}

// ToggleSort sorts by field. Repeating the active field flips the
// direction as the server reads it (absent means asc, case is ignored); an
// unrecognized direction and a new field both start ascending.
func (s State) ToggleSort(field string) (State, Intent) {
	direction := domain.SortDirectionAsc
	if current := s.SortField(); current != "" && current == field {
		switch strings.ToLower(strings.TrimSpace(s.Get(listing.ParamSortDirection))) {
		case "", string(domain.SortDirectionAsc), string(domain.SortDirectionDesc):
			direction = s.SortDirection().Flip()
		}
	}
	params := s.params.
		With(listing.ParamSortField, field).
		With(listing.ParamSortDirection, string(direction)).
		Without(listing.ParamPage)
	if strings.TrimSpace(field) == "" {
		params = params.Without(listing.ParamSortDirection)
	}
	next := State{path: s.path, params: params}
	return next, next.intent(true)
}

// Commit applies a text input's value when gesture confirms it. Ordinary
// keystrokes return the state unchanged and no intent.
func (s State) Commit(key, value string, gesture Gesture) (State, Intent, bool) {
	if !gesture.Commits() {
		return s, Intent{}, false
	}
	next, intent := s.SetFilter(key, value)
	return next, intent, true
}

// GoTo follows a pagination link. The link's query replaces the mapping
// wholesale; its path wins when present.
func (s State) GoTo(link string) (State, Intent, error) {
	target, err := ParseURL(link)
	if err != nil {
		return s, Intent{}, err
	}
	if target.path == "" {
		target.path = s.path
	}
	return target, target.intent(false), nil
}

// Sync replaces the mapping with the one a server response reported, so
// the view reflects what was actually applied.
func (s State) Sync(params listing.QueryParams) State {
	return New(s.path, params)
}

// Reload returns an intent that fetches the current state again without
// adding a history entry.
func (s State) Reload() Intent {
	return s.intent(true)
}

func (s State) intent(replace bool) Intent {
	return Intent{
		URL:            s.URL(),
		Params:         s.params.Clone(),
		Replace:        replace,
		PreserveScroll: true,
		PreserveState:  true,
	}
}
