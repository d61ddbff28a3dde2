package domain

import (
	"time"

	"github.com/google/uuid"
)

// Project groups tasks under a shared deadline and status.
type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      Status     `json:"status"`
	ImagePath   string     `json:"image_path"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	UpdatedBy   uuid.UUID  `json:"updated_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewProject creates a new project with immutable pattern
func NewProject(name, description string, status Status, dueDate *time.Time, author uuid.UUID) Project {
	now := time.Now()
	return Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		DueDate:     copyTime(dueDate),
		Status:      status,
		CreatedBy:   author,
		UpdatedBy:   author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithStatus returns a new project with updated status
func (p Project) WithStatus(status Status, editor uuid.UUID) Project {
	next := p
	next.DueDate = copyTime(p.DueDate)
	next.Status = status
	next.UpdatedBy = editor
	next.UpdatedAt = time.Now()
	return next
}

// Validate applies the store rules for projects.
func (p Project) Validate(today time.Time) error {
	errs := ValidationErrors{}
	errs.requireText("name", p.Name, 255)
	errs.maxText("description", p.Description, 1000)
	if p.Status == "" {
		errs.add("status", "The status field is required.")
	} else if !p.Status.Valid() {
		errs.add("status", "The selected status is invalid.")
	}
	errs.notBefore("due_date", p.DueDate, today)
	return errs.err()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
