package listing

import (
	"context"

	"github.com/ahmadalnaib/project-board/internal/domain"
)

// Filter is one resolved predicate.
type Filter struct {
	Column string
	Match  MatchKind
	Value  string
}

// Sort is the requested ordering. Stores always append ColumnID ascending as
// the final tie-break and place null values last.
type Sort struct {
	Column    string
	Direction domain.SortDirection
}

// Criteria is the store-facing form of a QueryParams mapping.
type Criteria struct {
	Filters []Filter
	Sort    Sort
}

// With returns a copy of the criteria with extra filters appended.
func (c Criteria) With(filters ...Filter) Criteria {
	out := Criteria{Sort: c.Sort}
	out.Filters = append(append([]Filter(nil), c.Filters...), filters...)
	return out
}

// Source is the read-only view of an entity store that the executor
// queries. Implementations must apply every filter, order by Sort then by
// id ascending, and slice with limit and offset.
type Source[T any] interface {
	Count(ctx context.Context, criteria Criteria) (int, error)
	Find(ctx context.Context, criteria Criteria, limit, offset int) ([]T, error)
}

// Snapshotter is implemented by sources that can pin one consistent view
// for all reads of a request, so a count and the rows it describes agree.
type Snapshotter[T any] interface {
	Snapshot(ctx context.Context) (Source[T], error)
}

// Pin returns the pinned view of src when it supports one, else src.
func Pin[T any](ctx context.Context, src Source[T]) (Source[T], error) {
	snap, ok := src.(Snapshotter[T])
	if !ok {
		return src, nil
	}
	return snap.Snapshot(ctx)
}
