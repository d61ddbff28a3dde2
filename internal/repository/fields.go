package repository

import (
	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

// ProjectField exposes project columns to listing.SliceSource.
func ProjectField(p domain.Project, column string) any {
	switch column {
	case listing.ColumnID:
		return p.ID
	case listing.ColumnName:
		return p.Name
	case listing.ColumnStatus:
		return string(p.Status)
	case listing.ColumnDueDate:
		if p.DueDate == nil {
			return nil
		}
		return *p.DueDate
	case listing.ColumnCreatedAt:
		return p.CreatedAt
	case listing.ColumnUpdatedAt:
		return p.UpdatedAt
	}
	return nil
}

// TaskField exposes task columns to listing.SliceSource.
func TaskField(t domain.Task, column string) any {
	switch column {
	case listing.ColumnID:
		return t.ID
	case listing.ColumnTitle:
		return t.Title
	case listing.ColumnStatus:
		return string(t.Status)
	case listing.ColumnPriority:
		return string(t.Priority)
	case listing.ColumnProjectID:
		return t.ProjectID
	case listing.ColumnDueDate:
		if t.DueDate == nil {
			return nil
		}
		return *t.DueDate
	case listing.ColumnCreatedAt:
		return t.CreatedAt
	case listing.ColumnUpdatedAt:
		return t.UpdatedAt
	}
	return nil
}
