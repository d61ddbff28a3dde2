package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("record not found")

// ProjectRepository defines the interface for project operations
type ProjectRepository interface {
	listing.Source[domain.Project]

	Create(ctx context.Context, project domain.Project) (domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Project, error)
}

// TaskRepository defines the interface for task operations
type TaskRepository interface {
	listing.Source[domain.Task]

	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error)
}

// UserRepository defines the interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error)
}

// Store bundles the repositories a server needs.
type Store struct {
	Projects ProjectRepository
	Tasks    TaskRepository
	Users    UserRepository
}
