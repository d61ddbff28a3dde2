package listing

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Parameter names shared by every list endpoint.
const (
	ParamPage          = "page"
	ParamSortField     = "sort_field"
	ParamSortDirection = "sort_direction"
)

// QueryParams is the canonical filter/sort/page mapping of a list view.
//
// A key is present only while its constraint is active: every method that
// receives an empty value removes the key instead of storing "". Values are
// never mutated in place; With and Without return copies so a QueryParams
// handed to a renderer can be shared safely.
type QueryParams map[string]string

// ParseQueryParams builds the mapping from decoded query values, keeping the
// first value of each key and dropping empty ones.
func ParseQueryParams(values url.Values) QueryParams {
	params := make(QueryParams, len(values))
	for key, vals := range values {
		if key == "" || len(vals) == 0 {
			continue
		}
		value := strings.TrimSpace(vals[0])
		if value == "" {
			continue
		}
		params[key] = value
	}
	return params
}

// ParseQuery decodes a raw query string. Malformed pairs are skipped.
func ParseQuery(raw string) QueryParams {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	return ParseQueryParams(values)
}

// Get returns the value for key and whether it is set.
func (p QueryParams) Get(key string) (string, bool) {
	value, ok := p[key]
	return value, ok
}

// Clone returns an independent copy.
func (p QueryParams) Clone() QueryParams {
	out := make(QueryParams, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// With returns a copy with key set to value, or removed when value is blank.
func (p QueryParams) With(key, value string) QueryParams {
	out := p.Clone()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(out, key)
		return out
	}
	out[key] = value
	return out
}

// Without returns a copy with the given keys removed.
func (p QueryParams) Without(keys ...string) QueryParams {
	out := p.Clone()
	for _, key := range keys {
		delete(out, key)
	}
	return out
}

// WithPage returns a copy targeting page n.
func (p QueryParams) WithPage(n int) QueryParams {
	return p.With(ParamPage, strconv.Itoa(n))
}

// Keys returns the set keys in sorted order.
func (p QueryParams) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Values converts the mapping back into url.Values.
func (p QueryParams) Values() url.Values {
	values := make(url.Values, len(p))
	for key, value := range p {
		values.Set(key, value)
	}
	return values
}

// Encode serializes the mapping as a query string sorted by key, so equal
// mappings always produce equal URLs.
func (p QueryParams) Encode() string {
	return p.Values().Encode()
}

// URL joins path and the encoded mapping.
func (p QueryParams) URL(path string) string {
	encoded := p.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// Equal reports whether both mappings hold the same keys and values.
func (p QueryParams) Equal(other QueryParams) bool {
	if len(p) != len(other) {
		return false
	}
	for key, value := range p {
		if otherValue, ok := other[key]; !ok || otherValue != value {
			return false
		}
	}
	return true
}
