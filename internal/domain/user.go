package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the author or assignee of projects and tasks.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new user with immutable pattern
func NewUser(name, email string) User {
	now := time.Now()
	return User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
