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

const tableProjects = "projects"

var projectColumns = []any{
	"id", "name", "description", "due_date", "status", "image_path",
	"created_by", "updated_by", "created_at", "updated_at",
}

// projectRepository implements ProjectRepository interface
type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

// Create creates a new project
func (r *projectRepository) Create(ctx context.Context, project domain.Project) (domain.Project, error) {
	sql, args, err := dialect().
		Insert(tableProjects).
		Prepared(true).
		Rows(goqu.Record{
			"id":          project.ID,
			"name":        project.Name,
			"description": nullableText(project.Description),
			"due_date":    nullableDate(project.DueDate),
			"status":      string(project.Status),
			"image_path":  nullableText(project.ImagePath),
			"created_by":  nullableUUID(project.CreatedBy),
			"updated_by":  nullableUUID(project.UpdatedBy),
			"created_at":  project.CreatedAt,
			"updated_at":  project.UpdatedAt,
		}).
		Returning(projectColumns...).
		ToSQL()
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to build project insert: %w", err)
	}

	created, err := scanProject(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to create project: %w", err)
	}
	return created, nil
}

// GetByID retrieves a project by ID
func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Project, error) {
	sql, args, err := dialect().
		From(tableProjects).
		Prepared(true).
		Select(projectColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return domain.Project{}, fmt.Errorf("failed to build project lookup: %w", err)
	}

	project, err := scanProject(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Project{}, notFound(err, "project "+id.String())
	}
	return project, nil
}

// GetByIDs retrieves multiple projects by their IDs.
func (r *projectRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Project, error) {
	if len(ids) == 0 {
		return []domain.Project{}, nil
	}

	sql, args, err := dialect().
		From(tableProjects).
		Prepared(true).
		Select(projectColumns...).
		Where(goqu.C("id").In(uuidArgs(ids)...)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build project batch lookup: %w", err)
	}
	return r.query(ctx, sql, args)
}

// Count implements listing.Source
func (r *projectRepository) Count(ctx context.Context, criteria listing.Criteria) (int, error) {
	return countRows(ctx, r.pool, tableProjects, criteria)
}

// Find implements listing.Source
func (r *projectRepository) Find(ctx context.Context, criteria listing.Criteria, limit, offset int) ([]domain.Project, error) {
	sql, args, err := buildFindQuery(tableProjects, projectColumns, criteria, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, sql, args)
}

func (r *projectRepository) query(ctx context.Context, sql string, args []any) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

func scanProject(row pgx.Row) (domain.Project, error) {
	var (
		project     domain.Project
		status      string
		description pgtype.Text
		imagePath   pgtype.Text
		dueDate     pgtype.Date
		createdBy   pgtype.UUID
		updatedBy   pgtype.UUID
	)
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&description,
		&dueDate,
		&status,
		&imagePath,
		&createdBy,
		&updatedBy,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return domain.Project{}, err
	}

	project.Description = description.String
	project.ImagePath = imagePath.String
	project.DueDate = datePtr(dueDate)
	project.Status = domain.Status(status)
	project.CreatedBy = uuidOrNil(createdBy)
	project.UpdatedBy = uuidOrNil(updatedBy)
	return project, nil
}

func uuidArgs(ids []uuid.UUID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
