package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/auth"
	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

type projectShowResponse struct {
	Data  ProjectResource                `json:"data"`
	Tasks listing.Envelope[TaskResource] `json:"tasks"`
}

type createdResponse[T any] struct {
	Data    T      `json:"data"`
	Success string `json:"success"`
}

type projectPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	ImagePath   string `json:"image_path"`
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	params := listing.ParseQueryParams(r.URL.Query())
	page, err := listing.Execute[domain.Project](r.Context(), h.executor, listing.Request{
		Resource: listing.Projects,
		Path:     "/projects",
		Params:   params,
	}, h.store.Projects)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	data, err := h.builder(r).projects(r.Context(), page.Data)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.Envelope[ProjectResource]{
		Data:        data,
		Meta:        page.Meta,
		QueryParams: appliedParams(params),
	})
}

// showProject answers with the project and a task listing scoped to it. The
// task listing understands the task list parameters and its links point
// back at the project.
func (h *Handler) showProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	project, err := h.store.Projects.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	params := listing.ParseQueryParams(r.URL.Query())
	tasks, err := listing.Execute[domain.Task](r.Context(), h.executor, listing.Request{
		Resource: listing.Tasks,
		Path:     "/projects/" + id.String(),
		Params:   params,
		Scope: []listing.Filter{
			{Column: listing.ColumnProjectID, Match: listing.MatchExact, Value: id.String()},
		},
	}, h.store.Tasks)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	builder := h.builder(r)
	resource, err := builder.project(r.Context(), project)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	taskData, err := builder.tasks(r.Context(), tasks.Data)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, projectShowResponse{
		Data: resource,
		Tasks: listing.Envelope[TaskResource]{
			Data:        taskData,
			Meta:        tasks.Meta,
			QueryParams: appliedParams(params),
		},
	})
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var payload projectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	dueDate, err := parseDate("due_date", payload.DueDate, h.now().Location())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	author, _ := auth.UserIDFromContext(r.Context())
	project := domain.NewProject(
		strings.TrimSpace(payload.Name),
		strings.TrimSpace(payload.Description),
		domain.Status(strings.TrimSpace(payload.Status)),
		dueDate,
		author,
	)
	project.ImagePath = strings.TrimSpace(payload.ImagePath)
	if err := project.Validate(h.now()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.store.Projects.Create(r.Context(), project)
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("failed to create project: %w", err))
		return
	}
	h.logger.InfoContext(r.Context(), "project created", "id", created.ID, "created_by", author)

	resource, err := h.builder(r).project(r.Context(), created)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse[ProjectResource]{
		Data:    resource,
		Success: "Project created successfully.",
	})
}
