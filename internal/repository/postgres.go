package repository

import "github.com/jackc/pgx/v5/pgxpool"

// NewPostgresStore wires the pgx repositories onto one pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Projects: NewProjectRepository(pool),
		Tasks:    NewTaskRepository(pool),
		Users:    NewUserRepository(pool),
	}
}
