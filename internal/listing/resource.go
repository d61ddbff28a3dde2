package listing

import (
	"strings"

	"github.com/ahmadalnaib/project-board/internal/domain"
)

// MatchKind selects how a filter value is compared with its column.
type MatchKind int

const (
	// MatchContains is a case-insensitive substring match.
	MatchContains MatchKind = iota
	// MatchExact requires equality.
	MatchExact
)

// FilterDef binds a query parameter to a column.
type FilterDef struct {
	Param  string
	Column string
	Match  MatchKind
}

// Resource describes which parameters a list endpoint understands.
type Resource struct {
	Name        string
	Filters     []FilterDef
	Sortable    []string
	DefaultSort Sort
}

// Column names shared by the list resources.
const (
	ColumnID        = "id"
	ColumnName      = "name"
	ColumnTitle     = "title"
	ColumnStatus    = "status"
	ColumnPriority  = "priority"
	ColumnDueDate   = "due_date"
	ColumnProjectID = "project_id"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
)

var defaultSort = Sort{Column: ColumnCreatedAt, Direction: domain.SortDirectionDesc}

// Projects is the project list resource.
var Projects = Resource{
	Name: "projects",
	Filters: []FilterDef{
		{Param: "name", Column: ColumnName, Match: MatchContains},
		{Param: "status", Column: ColumnStatus, Match: MatchExact},
	},
	Sortable:    []string{ColumnName, ColumnStatus, ColumnDueDate, ColumnCreatedAt, ColumnUpdatedAt},
	DefaultSort: defaultSort,
}

// Tasks is the task list resource.
var Tasks = Resource{
	Name: "tasks",
	Filters: []FilterDef{
		{Param: "title", Column: ColumnTitle, Match: MatchContains},
		{Param: "status", Column: ColumnStatus, Match: MatchExact},
		{Param: "priority", Column: ColumnPriority, Match: MatchExact},
		{Param: "project_id", Column: ColumnProjectID, Match: MatchExact},
	},
	Sortable:    []string{ColumnTitle, ColumnStatus, ColumnPriority, ColumnDueDate, ColumnCreatedAt, ColumnUpdatedAt},
	DefaultSort: defaultSort,
}

// IsSortable reports whether column may appear in sort_field.
func (r Resource) IsSortable(column string) bool {
	for _, candidate := range r.Sortable {
		if candidate == column {
			return true
		}
	}
	return false
}

// Criteria translates params into store criteria. Unknown keys, empty values
// and unknown sort fields are ignored.
func (r Resource) Criteria(params QueryParams) Criteria {
	criteria := Criteria{Sort: r.DefaultSort}
	for _, def := range r.Filters {
		value, ok := params.Get(def.Param)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		criteria.Filters = append(criteria.Filters, Filter{Column: def.Column, Match: def.Match, Value: value})
	}

	if field, ok := params.Get(ParamSortField); ok && r.IsSortable(field) {
		direction, _ := params.Get(ParamSortDirection)
		criteria.Sort = Sort{Column: field, Direction: domain.ParseSortDirection(direction)}
	}
	return criteria
}
