package httpapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/entityloader"
)

const dateLayout = "2006-01-02"

// UserSummary is the embedded form of a user.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProjectSummary is the embedded form of a project.
type ProjectSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProjectResource is the wire form of a project.
type ProjectResource struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	DueDate     *string      `json:"due_date"`
	Status      string       `json:"status"`
	ImagePath   string       `json:"image_path"`
	CreatedBy   *UserSummary `json:"createdBy"`
	UpdatedBy   *UserSummary `json:"updatedBy"`
}

// TaskResource is the wire form of a task.
type TaskResource struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	DueDate      *string         `json:"due_date"`
	Status       string          `json:"status"`
	Priority     string          `json:"priority"`
	ImagePath    string          `json:"image_path"`
	Project      *ProjectSummary `json:"project"`
	AssignedUser *UserSummary    `json:"assignedUser"`
	CreatedBy    *UserSummary    `json:"createdBy"`
	UpdatedBy    *UserSummary    `json:"updatedBy"`
}

// resourceBuilder resolves related rows through request-scoped loaders. A
// nil loader set leaves every relation empty.
type resourceBuilder struct {
	loaders *entityloader.Loaders
}

func (b resourceBuilder) project(ctx context.Context, p domain.Project) (ProjectResource, error) {
	createdBy, err := b.user(ctx, p.CreatedBy)
	if err != nil {
		return ProjectResource{}, err
	}
	updatedBy, err := b.user(ctx, p.UpdatedBy)
	if err != nil {
		return ProjectResource{}, err
	}
	return ProjectResource{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt.Format(dateLayout),
		UpdatedAt:   p.UpdatedAt.Format(dateLayout),
		DueDate:     formatDate(p.DueDate),
		Status:      string(p.Status),
		ImagePath:   p.ImagePath,
		CreatedBy:   createdBy,
		UpdatedBy:   updatedBy,
	}, nil
}

func (b resourceBuilder) projects(ctx context.Context, items []domain.Project) ([]ProjectResource, error) {
	return resolveAll(ctx, items, b.project)
}

func (b resourceBuilder) task(ctx context.Context, t domain.Task) (TaskResource, error) {
	resource := TaskResource{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(dateLayout),
		UpdatedAt:   t.UpdatedAt.Format(dateLayout),
		DueDate:     formatDate(t.DueDate),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ImagePath:   t.ImagePath,
	}
	if b.loaders == nil {
		return resource, nil
	}

	project, err := b.loaders.Project(ctx, t.ProjectID)
	if err != nil {
		return TaskResource{}, err
	}
	if project != nil {
		resource.Project = &ProjectSummary{ID: project.ID, Name: project.Name}
	}
	if t.AssignedUserID != nil {
		if resource.AssignedUser, err = b.user(ctx, *t.AssignedUserID); err != nil {
			return TaskResource{}, err
		}
	}
	if resource.CreatedBy, err = b.user(ctx, t.CreatedBy); err != nil {
		return TaskResource{}, err
	}
	if resource.UpdatedBy, err = b.user(ctx, t.UpdatedBy); err != nil {
		return TaskResource{}, err
	}
	return resource, nil
}

func (b resourceBuilder) tasks(ctx context.Context, items []domain.Task) ([]TaskResource, error) {
	return resolveAll(ctx, items, b.task)
}

// resolveAll builds every row concurrently so the loaders see the whole
// page inside one batch window. Output order follows items.
func resolveAll[T, R any](ctx context.Context, items []T, build func(context.Context, T) (R, error)) ([]R, error) {
	type result struct {
		resource R
		err      error
	}
	results := make([]chan result, len(items))
	for i, item := range items {
		results[i] = make(chan result, 1)
		go func(item T, out chan<- result) {
			resource, err := build(ctx, item)
			out <- result{resource, err}
		}(item, results[i])
	}

	out := make([]R, 0, len(items))
	var firstErr error
	for _, ch := range results {
		r := <-ch
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
		out = append(out, r.resource)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

func (b resourceBuilder) user(ctx context.Context, id uuid.UUID) (*UserSummary, error) {
	if b.loaders == nil || id == uuid.Nil {
		return nil, nil
	}
	user, err := b.loaders.User(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return &UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
