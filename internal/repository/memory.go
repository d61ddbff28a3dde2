package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

// MemoryStore keeps every entity in process. Reads take a snapshot under the
// read lock so list queries never observe a half-applied create; Snapshot
// pins one copy for a whole request, keeping its count and rows in step.
type MemoryStore struct {
	mu       sync.RWMutex
	projects []domain.Project
	tasks    []domain.Task
	users    map[uuid.UUID]domain.User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]domain.User)}
}

// Store returns repositories backed by the memory store.
func (m *MemoryStore) Store() Store {
	return Store{
		Projects: &memoryProjects{m},
		Tasks:    &memoryTasks{m},
		Users:    &memoryUsers{m},
	}
}

type memoryProjects struct{ m *MemoryStore }

func (r *memoryProjects) source() *listing.SliceSource[domain.Project] {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	snapshot := append([]domain.Project(nil), r.m.projects...)
	return listing.NewSliceSource(snapshot, ProjectField)
}

// Snapshot implements listing.Snapshotter.
func (r *memoryProjects) Snapshot(ctx context.Context) (listing.Source[domain.Project], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.source(), nil
}

func (r *memoryProjects) Count(ctx context.Context, criteria listing.Criteria) (int, error) {
	return r.source().Count(ctx, criteria)
}

func (r *memoryProjects) Find(ctx context.Context, criteria listing.Criteria, limit, offset int) ([]domain.Project, error) {
	return r.source().Find(ctx, criteria, limit, offset)
}

func (r *memoryProjects) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return domain.Project{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.projects {
		if existing.ID == project.ID {
			return domain.Project{}, fmt.Errorf("project %s already exists", project.ID)
		}
	}
	r.m.projects = append(r.m.projects, project)
	return project, nil
}

func (r *memoryProjects) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	projects, err := r.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.Project{}, err
	}
	if len(projects) == 0 {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return projects[0], nil
}

func (r *memoryProjects) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []domain.Project{}
	for _, project := range r.m.projects {
		if _, ok := wanted[project.ID]; ok {
			out = append(out, project)
		}
	}
	return out, nil
}

type memoryTasks struct{ m *MemoryStore }

func (r *memoryTasks) source() *listing.SliceSource[domain.Task] {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	snapshot := append([]domain.Task(nil), r.m.tasks...)
	return listing.NewSliceSource(snapshot, TaskField)
}

// Snapshot implements listing.Snapshotter.
func (r *memoryTasks) Snapshot(ctx context.Context) (listing.Source[domain.Task], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.source(), nil
}

func (r *memoryTasks) Count(ctx context.Context, criteria listing.Criteria) (int, error) {
	return r.source().Count(ctx, criteria)
}

func (r *memoryTasks) Find(ctx context.Context, criteria listing.Criteria, limit, offset int) ([]domain.Task, error) {
	return r.source().Find(ctx, criteria, limit, offset)
}

func (r *memoryTasks) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	found := false
	for _, project := range r.m.projects {
		if project.ID == task.ProjectID {
			found = true
			break
		}
	}
	if !found {
		return domain.Task{}, fmt.Errorf("project %s: %w", task.ProjectID, ErrNotFound)
	}
	r.m.tasks = append(r.m.tasks, task)
	return task, nil
}

func (r *memoryTasks) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	for _, task := range r.m.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return domain.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

type memoryUsers struct{ m *MemoryStore }

func (r *memoryUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; ok {
		return domain.User{}, fmt.Errorf("user %s already exists", user.ID)
	}
	r.m.users[user.ID] = user
	return user, nil
}

func (r *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	users, err := r.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.User{}, err
	}
	if len(users) == 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return users[0], nil
}

func (r *memoryUsers) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	out := []domain.User{}
	for _, id := range ids {
		if user, ok := r.m.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}
