package domain

import "strings"

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// ParseSortDirection treats anything that is not "desc" as ascending.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDirectionDesc)) {
		return SortDirectionDesc
	}
	return SortDirectionAsc
}

// Flip returns the opposite direction.
func (d SortDirection) Flip() SortDirection {
	if d == SortDirectionAsc {
		return SortDirectionDesc
	}
	return SortDirectionAsc
}
