package export

import (
	"github.com/ahmadalnaib/project-board/internal/domain"
)

// ProjectSheet lays out projects.
var ProjectSheet = Sheet[domain.Project]{
	Name: "Projects",
	Columns: []Column[domain.Project]{
		{Header: "ID", Value: func(p domain.Project) any { return p.ID.String() }},
		{Header: "Name", Value: func(p domain.Project) any { return p.Name }},
		{Header: "Status", Value: func(p domain.Project) any { return p.Status.Label() }},
		{Header: "Due Date", Value: func(p domain.Project) any { return formatDate(p.DueDate) }},
		{Header: "Created", Value: func(p domain.Project) any { return p.CreatedAt.Format(dateLayout) }},
		{Header: "Description", Value: func(p domain.Project) any { return p.Description }},
	},
}

// TaskSheet lays out tasks.
var TaskSheet = Sheet[domain.Task]{
	Name: "Tasks",
	Columns: []Column[domain.Task]{
		{Header: "ID", Value: func(t domain.Task) any { return t.ID.String() }},
		{Header: "Title", Value: func(t domain.Task) any { return t.Title }},
		{Header: "Status", Value: func(t domain.Task) any { return t.Status.Label() }},
		{Header: "Priority", Value: func(t domain.Task) any { return string(t.Priority) }},
		{Header: "Due Date", Value: func(t domain.Task) any { return formatDate(t.DueDate) }},
		{Header: "Project ID", Value: func(t domain.Task) any { return t.ProjectID.String() }},
		{Header: "Created", Value: func(t domain.Task) any { return t.CreatedAt.Format(dateLayout) }},
	},
}
