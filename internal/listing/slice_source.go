package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ahmadalnaib/project-board/internal/domain"
)

// FieldFunc returns the value of column for item, or nil when it is null.
// Supported value types are string, time.Time and fmt.Stringer.
type FieldFunc[T any] func(item T, column string) any

// SliceSource answers Source queries from an in-memory slice.
type SliceSource[T any] struct {
	items []T
	field FieldFunc[T]
}

// NewSliceSource wraps items. The slice is not copied; callers that mutate
// it must not share the source across goroutines.
func NewSliceSource[T any](items []T, field FieldFunc[T]) *SliceSource[T] {
	return &SliceSource[T]{items: items, field: field}
}

// Count implements Source.
func (s *SliceSource[T]) Count(ctx context.Context, criteria Criteria) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.match(criteria)), nil
}

// Find implements Source.
func (s *SliceSource[T]) Find(ctx context.Context, criteria Criteria, limit, offset int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := s.match(criteria)
	s.order(matched, criteria.Sort)

	if offset < 0 {
		offset = 0
	}
	if offset >= len(matched) {
		return []T{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]T, end-offset)
	copy(out, matched[offset:end])
	return out, nil
}

func (s *SliceSource[T]) match(criteria Criteria) []T {
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.matches(item, criteria.Filters) {
			out = append(out, item)
		}
	}
	return out
}

func (s *SliceSource[T]) matches(item T, filters []Filter) bool {
	for _, filter := range filters {
		value := s.field(item, filter.Column)
		if value == nil {
			return false
		}
		text := textOf(value)
		switch filter.Match {
		case MatchContains:
			if !strings.Contains(strings.ToLower(text), strings.ToLower(filter.Value)) {
				return false
			}
		default:
			if text != filter.Value {
				return false
			}
		}
	}
	return true
}

func (s *SliceSource[T]) order(items []T, by Sort) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := s.field(items[i], by.Column), s.field(items[j], by.Column)
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			if c := compareValues(a, b); c != 0 {
				if by.Direction == domain.SortDirectionDesc {
					return c > 0
				}
				return c < 0
			}
		}
		return compareValues(s.field(items[i], ColumnID), s.field(items[j], ColumnID)) < 0
	})
}

func textOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func compareValues(a, b any) int {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt)
		}
	}
	return strings.Compare(textOf(a), textOf(b))
}
