package entityloader

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

const batchWait = 2 * time.Millisecond

// Loaders batches the lookups a page of tasks needs for its related rows.
type Loaders struct {
	Projects *dataloader.Loader
	Users    *dataloader.Loader
}

// NewLoaders creates request-scoped loaders over store.
func NewLoaders(store repository.Store) *Loaders {
	return &Loaders{
		Projects: dataloader.NewBatchedLoader(batch(store.Projects.GetByIDs, func(p domain.Project) uuid.UUID { return p.ID }),
			dataloader.WithWait(batchWait)),
		Users: dataloader.NewBatchedLoader(batch(store.Users.GetByIDs, func(u domain.User) uuid.UUID { return u.ID }),
			dataloader.WithWait(batchWait)),
	}
}

// batch adapts a GetByIDs lookup to a dataloader batch function. Results are
// returned in key order; missing ids resolve to nil data.
func batch[T any](fetch func(context.Context, []uuid.UUID) ([]T, error), idOf func(T) uuid.UUID) dataloader.BatchFunc {
	return func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))

		ids := make([]uuid.UUID, 0, len(keys))
		for i, k := range keys {
			id, err := uuid.Parse(k.String())
			if err != nil {
				results[i] = &dataloader.Result{Error: fmt.Errorf("invalid UUID: %w", err)}
				continue
			}
			ids = append(ids, id)
		}

		items, err := fetch(ctx, ids)
		if err != nil {
			for i := range results {
				if results[i] == nil {
					results[i] = &dataloader.Result{Error: err}
				}
			}
			return results
		}

		byID := make(map[uuid.UUID]T, len(items))
		for _, item := range items {
			byID[idOf(item)] = item
		}

		for i, k := range keys {
			if results[i] != nil {
				continue
			}
			id := uuid.MustParse(k.String())
			if item, ok := byID[id]; ok {
				results[i] = &dataloader.Result{Data: item}
			} else {
				results[i] = &dataloader.Result{Data: nil}
			}
		}
		return results
	}
}

// Project loads one project, or nil when it does not exist.
func (l *Loaders) Project(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	data, err := l.Projects.Load(ctx, dataloader.StringKey(id.String()))()
	if err != nil {
		return nil, err
	}
	project, ok := data.(domain.Project)
	if !ok {
		return nil, nil
	}
	return &project, nil
}

// User loads one user, or nil when it does not exist.
func (l *Loaders) User(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	data, err := l.Users.Load(ctx, dataloader.StringKey(id.String()))()
	if err != nil {
		return nil, err
	}
	user, ok := data.(domain.User)
	if !ok {
		return nil, nil
	}
	return &user, nil
}
