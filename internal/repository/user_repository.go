package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmadalnaib/project-board/internal/domain"
)

const tableUsers = "users"

var userColumns = []any{"id", "name", "email", "created_at", "updated_at"}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	sql, args, err := dialect().
		Insert(tableUsers).
		Prepared(true).
		Rows(goqu.Record{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
			"updated_at": user.UpdatedAt,
		}).
		Returning(userColumns...).
		ToSQL()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build user insert: %w", err)
	}

	created, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	users, err := r.GetByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return domain.User{}, err
	}
	if len(users) == 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return users[0], nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	sql, args, err := dialect().
		From(tableUsers).
		Prepared(true).
		Select(userColumns...).
		Where(goqu.C("id").In(uuidArgs(ids)...)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build user lookup: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}
