package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a project.
type Task struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	DueDate        *time.Time `json:"due_date"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	ImagePath      string     `json:"image_path"`
	AssignedUserID *uuid.UUID `json:"assigned_user_id"`
	ProjectID      uuid.UUID  `json:"project_id"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	UpdatedBy      uuid.UUID  `json:"updated_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTask creates a new task with immutable pattern
func NewTask(projectID uuid.UUID, title, description string, status Status, priority Priority, dueDate *time.Time, author uuid.UUID) Task {
	now := time.Now()
	return Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		DueDate:     copyTime(dueDate),
		Status:      status,
		Priority:    priority,
		ProjectID:   projectID,
		CreatedBy:   author,
		UpdatedBy:   author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithAssignee returns a new task assigned to userID
func (t Task) WithAssignee(userID uuid.UUID) Task {
	next := t
	next.DueDate = copyTime(t.DueDate)
	id := userID
	next.AssignedUserID = &id
	next.UpdatedAt = time.Now()
	return next
}

// Validate applies the store rules for tasks.
func (t Task) Validate(today time.Time) error {
	errs := ValidationErrors{}
	errs.requireText("title", t.Title, 255)
	errs.maxText("description", t.Description, 1000)
	if t.Status == "" {
		errs.add("status", "The status field is required.")
	} else if !t.Status.Valid() {
		errs.add("status", "The selected status is invalid.")
	}
	if t.Priority != "" && !t.Priority.Valid() {
		errs.add("priority", "The selected priority is invalid.")
	}
	if t.ProjectID == uuid.Nil {
		errs.add("project_id", "The project id field is required.")
	}
	errs.notBefore("due_date", t.DueDate, today)
	return errs.err()
}
