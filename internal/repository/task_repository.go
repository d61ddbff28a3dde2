package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

const tableTasks = "tasks"

var taskColumns = []any{
	"id", "title", "description", "due_date", "status", "priority", "image_path",
	"assigned_user_id", "project_id", "created_by", "updated_by", "created_at", "updated_at",
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	sql, args, err := dialect().
		Insert(tableTasks).
		Prepared(true).
		Rows(goqu.Record{
			"id":               task.ID,
			"title":            task.Title,
			"description":      nullableText(task.Description),
			"due_date":         nullableDate(task.DueDate),
			"status":           string(task.Status),
			"priority":         string(task.Priority),
			"image_path":       nullableText(task.ImagePath),
			"assigned_user_id": nullableUUIDPtr(task.AssignedUserID),
			"project_id":       task.ProjectID,
			"created_by":       nullableUUID(task.CreatedBy),
			"updated_by":       nullableUUID(task.UpdatedBy),
			"created_at":       task.CreatedAt,
			"updated_at":       task.UpdatedAt,
		}).
		Returning(taskColumns...).
		ToSQL()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to build task insert: %w", err)
	}

	created, err := scanTask(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return created, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	sql, args, err := dialect().
		From(tableTasks).
		Prepared(true).
		Select(taskColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to build task lookup: %w", err)
	}

	task, err := scanTask(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Task{}, notFound(err, "task "+id.String())
	}
	return task, nil
}

func (r *taskRepository) Count(ctx context.Context, criteria listing.Criteria) (int, error) {
	return countRows(ctx, r.pool, tableTasks, criteria)
}

func (r *taskRepository) Find(ctx context.Context, criteria listing.Criteria, limit, offset int) ([]domain.Task, error) {
	sql, args, err := buildFindQuery(tableTasks, taskColumns, criteria, limit, offset)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		task        domain.Task
		status      string
		priority    string
		description pgtype.Text
		imagePath   pgtype.Text
		dueDate     pgtype.Date
		assignedTo  pgtype.UUID
		createdBy   pgtype.UUID
		updatedBy   pgtype.UUID
	)
	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&dueDate,
		&status,
		&priority,
		&imagePath,
		&assignedTo,
		&task.ProjectID,
		&createdBy,
		&updatedBy,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return domain.Task{}, err
	}

	task.Description = description.String
	task.ImagePath = imagePath.String
	task.DueDate = datePtr(dueDate)
	task.Status = domain.Status(status)
	task.Priority = domain.Priority(priority)
	task.AssignedUserID = uuidPtr(assignedTo)
	task.CreatedBy = uuidOrNil(createdBy)
	task.UpdatedBy = uuidOrNil(updatedBy)
	return task, nil
}
