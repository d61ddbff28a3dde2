// Package factory builds plausible projects, tasks and users for seeding
// and tests. A factory with a fixed seed always produces the same rows.
package factory

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/domain"
)

var words = []string{
	"alpha", "beacon", "cobalt", "delta", "ember", "falcon", "granite", "harbor",
	"iris", "juniper", "kestrel", "lumen", "meridian", "nova", "orbit", "prairie",
	"quartz", "raven", "summit", "tundra", "umber", "vertex", "willow", "zephyr",
}

var firstNames = []string{"Ada", "Brook", "Casey", "Devon", "Emery", "Finley", "Harper", "Jules", "Kai", "Morgan"}

// Factory generates entities from a seeded source.
type Factory struct {
	rng *rand.Rand
	now time.Time
}

// New creates a factory. now anchors created_at and due dates.
func New(seed uint64, now time.Time) *Factory {
	return &Factory{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now: now}
}

func (f *Factory) id() uuid.UUID {
	var id uuid.UUID
	hi, lo := f.rng.Uint64(), f.rng.Uint64()
	for i := 0; i < 8; i++ {
		id[i] = byte(hi >> (56 - 8*i))
		id[8+i] = byte(lo >> (56 - 8*i))
	}
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

func (f *Factory) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[f.rng.IntN(len(words))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ")
}

// createdAt spreads rows over the last 90 days.
func (f *Factory) createdAt() time.Time {
	return f.now.Add(-time.Duration(f.rng.Int64N(int64(90 * 24 * time.Hour)))).Truncate(time.Second)
}

// dueDate is within the next year, or nil for roughly one row in five.
func (f *Factory) dueDate(within int) *time.Time {
	if f.rng.IntN(5) == 0 {
		return nil
	}
	y, m, d := f.now.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, f.now.Location()).AddDate(0, 0, f.rng.IntN(within))
	return &due
}

func (f *Factory) status() domain.Status {
	return domain.Statuses[f.rng.IntN(len(domain.Statuses))]
}

// User builds the n-th user.
func (f *Factory) User(n int) domain.User {
	created := f.createdAt()
	name := firstNames[f.rng.IntN(len(firstNames))]
	return domain.User{
		ID:        f.id(),
		Name:      name,
		Email:     fmt.Sprintf("%s.%d@example.com", strings.ToLower(name), n),
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Project builds a project authored by author.
func (f *Factory) Project(author uuid.UUID) domain.Project {
	created := f.createdAt()
	return domain.Project{
		ID:          f.id(),
		Name:        f.sentence(2 + f.rng.IntN(3)),
		Description: f.sentence(8 + f.rng.IntN(8)),
		DueDate:     f.dueDate(365),
		Status:      f.status(),
		ImagePath:   fmt.Sprintf("projects/%d.png", f.rng.IntN(1000)),
		CreatedBy:   author,
		UpdatedBy:   author,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// Task builds a task in project. A nil assignee leaves it unassigned.
func (f *Factory) Task(project uuid.UUID, assignee *uuid.UUID, author uuid.UUID) domain.Task {
	created := f.createdAt()
	task := domain.Task{
		ID:          f.id(),
		Title:       f.sentence(3 + f.rng.IntN(4)),
		Description: f.sentence(10 + f.rng.IntN(10)),
		DueDate:     f.dueDate(31),
		Status:      f.status(),
		Priority:    domain.Priorities[f.rng.IntN(len(domain.Priorities))],
		ImagePath:   fmt.Sprintf("tasks/%d.png", f.rng.IntN(1000)),
		ProjectID:   project,
		CreatedBy:   author,
		UpdatedBy:   author,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if assignee != nil {
		id := *assignee
		task.AssignedUserID = &id
	}
	return task
}
