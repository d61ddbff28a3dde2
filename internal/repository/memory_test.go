package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

func seedProjects(t *testing.T, store Store, n int) []domain.Project {
	t.Helper()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	out := make([]domain.Project, 0, n)
	for i := 0; i < n; i++ {
		project := domain.NewProject(fmt.Sprintf("Project %02d", i+1), "", domain.StatusPending, nil, uuid.Nil)
		project.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		created, err := store.Projects.Create(context.Background(), project)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestMemoryStore_ListsThroughExecutor(t *testing.T) {
	store := NewMemoryStore().Store()
	projects := seedProjects(t, store, 12)

	page, err := listing.Execute[domain.Project](context.Background(), listing.NewExecutor(), listing.Request{
		Resource: listing.Projects,
		Path:     "/projects",
		Params:   listing.QueryParams{"page": "2"},
	}, store.Projects)
	require.NoError(t, err)

	assert.Equal(t, 12, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.LastPage)
	require.Len(t, page.Data, 2)
	// newest first, so page two holds the two oldest projects
	assert.Equal(t, projects[1].ID, page.Data[0].ID)
	assert.Equal(t, projects[0].ID, page.Data[1].ID)
}

func TestMemoryStore_ExactFilterOnProjectID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()
	projects := seedProjects(t, store, 2)

	for i, project := range projects {
		for j := 0; j <= i; j++ {
			task := domain.NewTask(project.ID, fmt.Sprintf("Task %d-%d", i, j), "", domain.StatusPending, domain.PriorityLow, nil, uuid.Nil)
			_, err := store.Tasks.Create(ctx, task)
			require.NoError(t, err)
		}
	}

	criteria := listing.Tasks.Criteria(listing.QueryParams{"project_id": projects[1].ID.String()})
	total, err := store.Tasks.Count(ctx, criteria)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	criteria = listing.Tasks.Criteria(listing.QueryParams{"project_id": "not-a-uuid"})
	total, err = store.Tasks.Count(ctx, criteria)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMemoryStore_TaskRequiresExistingProject(t *testing.T) {
	store := NewMemoryStore().Store()

	task := domain.NewTask(uuid.New(), "Orphan", "", domain.StatusPending, domain.PriorityHigh, nil, uuid.Nil)
	_, err := store.Tasks.Create(context.Background(), task)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_GetByIDNotFound(t *testing.T) {
	store := NewMemoryStore().Store()

	_, err := store.Projects.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Users.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()
	alice, err := store.Users.Create(ctx, domain.NewUser("Alice", "alice@example.com"))
	require.NoError(t, err)

	users, err := store.Users.GetByIDs(ctx, []uuid.UUID{uuid.New(), alice.ID})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestMemoryStore_RejectsDuplicateIDs(t *testing.T) {
	store := NewMemoryStore().Store()
	project := domain.NewProject("Once", "", domain.StatusPending, nil, uuid.Nil)

	_, err := store.Projects.Create(context.Background(), project)
	require.NoError(t, err)
	_, err = store.Projects.Create(context.Background(), project)
	assert.Error(t, err)
}

func TestMemoryStore_SnapshotIgnoresLaterCreates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore().Store()
	seedProjects(t, store, 3)

	pinned, err := listing.Pin[domain.Project](ctx, store.Projects)
	require.NoError(t, err)

	seedProjects(t, store, 1)

	total, err := pinned.Count(ctx, listing.Projects.Criteria(nil))
	require.NoError(t, err)
	rows, err := pinned.Find(ctx, listing.Projects.Criteria(nil), 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, rows, 3)

	live, err := store.Projects.Count(ctx, listing.Projects.Criteria(nil))
	require.NoError(t, err)
	assert.Equal(t, 4, live)
}
