package tui

import (
	"strings"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

// row is the subset of a project or task resource the table shows.
type row struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	DueDate   *string `json:"due_date"`
	CreatedAt string  `json:"created_at"`
	Project   *struct {
		Name string `json:"name"`
	} `json:"project"`
}

// Column is one table column. SortField is empty for unsortable columns;
// Shortcut toggles the sort.
type Column struct {
	Header    string
	SortField string
	Shortcut  string
	Width     int
	Value     func(row) string
}

// Filter is an exact-match filter cycled by Shortcut through Values.
type Filter struct {
	Key      string
	Label    string
	Shortcut string
	Values   []string
}

// Next returns the value after current, wrapping through "" (no filter).
func (f Filter) Next(current string) string {
	for i, value := range f.Values {
		if value == current {
			if i+1 < len(f.Values) {
				return f.Values[i+1]
			}
			return ""
		}
	}
	if len(f.Values) == 0 {
		return ""
	}
	return f.Values[0]
}

// View describes one list screen.
type View struct {
	Title     string
	Path      string
	SearchKey string
	Columns   []Column
	Filters   []Filter
	Empty     string
}

func statusValues() []string {
	out := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		out[i] = string(s)
	}
	return out
}

func priorityValues() []string {
	out := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		out[i] = string(p)
	}
	return out
}

func due(r row) string {
	if r.DueDate == nil {
		return "-"
	}
	return *r.DueDate
}

func statusLabel(r row) string {
	return domain.Status(r.Status).Label()
}

// ProjectsView lists projects.
var ProjectsView = View{
	Title:     "Projects",
	Path:      "/projects",
	SearchKey: "name",
	Columns: []Column{
		{Header: "Name", SortField: listing.ColumnName, Shortcut: "1", Width: 32, Value: func(r row) string { return r.Name }},
		{Header: "Status", SortField: listing.ColumnStatus, Shortcut: "2", Width: 12, Value: statusLabel},
		{Header: "Due", SortField: listing.ColumnDueDate, Shortcut: "3", Width: 11, Value: due},
		{Header: "Created", SortField: listing.ColumnCreatedAt, Shortcut: "4", Width: 11, Value: func(r row) string { return r.CreatedAt }},
	},
	Filters: []Filter{
		{Key: "status", Label: "status", Shortcut: "s", Values: statusValues()},
	},
	Empty: "No projects found. Create your first project",
}

// TasksView lists tasks.
var TasksView = View{
	Title:     "Tasks",
	Path:      "/tasks",
	SearchKey: "title",
	Columns: []Column{
		{Header: "Title", SortField: listing.ColumnTitle, Shortcut: "1", Width: 30, Value: func(r row) string { return r.Title }},
		{Header: "Project", Width: 18, Value: func(r row) string {
			if r.Project == nil {
				return "-"
			}
			return r.Project.Name
		}},
		{Header: "Status", SortField: listing.ColumnStatus, Shortcut: "2", Width: 12, Value: statusLabel},
		{Header: "Priority", SortField: listing.ColumnPriority, Shortcut: "3", Width: 9, Value: func(r row) string { return r.Priority }},
		{Header: "Due", SortField: listing.ColumnDueDate, Shortcut: "4", Width: 11, Value: due},
		{Header: "Created", SortField: listing.ColumnCreatedAt, Shortcut: "5", Width: 11, Value: func(r row) string { return r.CreatedAt }},
	},
	Filters: []Filter{
		{Key: "status", Label: "status", Shortcut: "s", Values: statusValues()},
		{Key: "priority", Label: "priority", Shortcut: "p", Values: priorityValues()},
	},
	Empty: "No tasks found. Create your first task",
}

// ViewFor picks the view for a resource name.
func ViewFor(name string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "projects", "project":
		return ProjectsView, true
	case "tasks", "task":
		return TasksView, true
	}
	return View{}, false
}
