package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/repository"
)

// Counts sets how many rows Seed creates.
type Counts struct {
	Users           int
	Projects        int
	TasksPerProject int
}

// Summary reports what Seed created.
type Summary struct {
	Users    int
	Projects int
	Tasks    int
}

// Seed fills store with generated rows. Projects and tasks are authored and
// assigned round-robin across the generated users.
func Seed(ctx context.Context, store repository.Store, f *Factory, counts Counts, logger *slog.Logger) (Summary, error) {
	var summary Summary

	users := make([]uuid.UUID, 0, counts.Users)
	for i := 0; i < counts.Users; i++ {
		user, err := store.Users.Create(ctx, f.User(i+1))
		if err != nil {
			return summary, fmt.Errorf("failed to seed user %d: %w", i+1, err)
		}
		users = append(users, user.ID)
		summary.Users++
	}
	pick := func(n int) uuid.UUID {
		if len(users) == 0 {
			return uuid.Nil
		}
		return users[n%len(users)]
	}

	for i := 0; i < counts.Projects; i++ {
		project, err := store.Projects.Create(ctx, f.Project(pick(i)))
		if err != nil {
			return summary, fmt.Errorf("failed to seed project %d: %w", i+1, err)
		}
		summary.Projects++

		for j := 0; j < counts.TasksPerProject; j++ {
			var assignee *uuid.UUID
			if id := pick(i + j + 1); id != uuid.Nil {
				assignee = &id
			}
			if _, err := store.Tasks.Create(ctx, f.Task(project.ID, assignee, pick(i))); err != nil {
				return summary, fmt.Errorf("failed to seed task %d of project %d: %w", j+1, i+1, err)
			}
			summary.Tasks++
		}
	}

	logger.InfoContext(ctx, "seeded store",
		"users", summary.Users,
		"projects", summary.Projects,
		"tasks", summary.Tasks,
	)
	return summary, nil
}
