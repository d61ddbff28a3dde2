package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/auth"
	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

type taskShowResponse struct {
	Data TaskResource `json:"data"`
}

type taskPayload struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	Status         string `json:"status"`
	Priority       string `json:"priority"`
	ImagePath      string `json:"image_path"`
	ProjectID      string `json:"project_id"`
	AssignedUserID string `json:"assigned_user_id"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	params := listing.ParseQueryParams(r.URL.Query())
	page, err := listing.Execute[domain.Task](r.Context(), h.executor, listing.Request{
		Resource: listing.Tasks,
		Path:     "/tasks",
		Params:   params,
	}, h.store.Tasks)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	data, err := h.builder(r).tasks(r.Context(), page.Data)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listing.Envelope[TaskResource]{
		Data:        data,
		Meta:        page.Meta,
		QueryParams: appliedParams(params),
	})
}

func (h *Handler) showTask(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	task, err := h.store.Tasks.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resource, err := h.builder(r).task(r.Context(), task)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, taskShowResponse{Data: resource})
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var payload taskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	task, err := h.taskFromPayload(r, payload)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	created, err := h.store.Tasks.Create(r.Context(), task)
	if err != nil {
		writeError(w, r, h.logger, fmt.Errorf("failed to create task: %w", err))
		return
	}
	h.logger.InfoContext(r.Context(), "task created", "id", created.ID, "project_id", created.ProjectID)

	resource, err := h.builder(r).task(r.Context(), created)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse[TaskResource]{
		Data:    resource,
		Success: "Task created successfully.",
	})
}

// taskFromPayload validates the payload, including that the referenced
// project and assignee exist.
func (h *Handler) taskFromPayload(r *http.Request, payload taskPayload) (domain.Task, error) {
	invalid := domain.ValidationErrors{}

	dueDate, err := parseDate("due_date", payload.DueDate, h.now().Location())
	if err != nil {
		return domain.Task{}, err
	}

	projectID, ok := parseOptionalUUID(payload.ProjectID)
	if !ok {
		invalid["project_id"] = "The selected project id is invalid."
	} else if projectID != uuid.Nil {
		if _, err := h.store.Projects.GetByID(r.Context(), projectID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return domain.Task{}, err
			}
			invalid["project_id"] = "The selected project id is invalid."
		}
	}

	assigneeID, ok := parseOptionalUUID(payload.AssignedUserID)
	if !ok {
		invalid["assigned_user_id"] = "The selected assigned user id is invalid."
	} else if assigneeID != uuid.Nil {
		if _, err := h.store.Users.GetByID(r.Context(), assigneeID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return domain.Task{}, err
			}
			invalid["assigned_user_id"] = "The selected assigned user id is invalid."
		}
	}

	priority := domain.Priority(strings.TrimSpace(payload.Priority))
	if priority == "" {
		priority = domain.PriorityMedium
	}
	author, _ := auth.UserIDFromContext(r.Context())
	task := domain.NewTask(
		projectID,
		strings.TrimSpace(payload.Title),
		strings.TrimSpace(payload.Description),
		domain.Status(strings.TrimSpace(payload.Status)),
		priority,
		dueDate,
		author,
	)
	task.ImagePath = strings.TrimSpace(payload.ImagePath)
	if assigneeID != uuid.Nil {
		task = task.WithAssignee(assigneeID)
	}

	if err := task.Validate(h.now()); err != nil {
		var rules domain.ValidationErrors
		if errors.As(err, &rules) {
			for field, message := range rules {
				if _, exists := invalid[field]; !exists {
					invalid[field] = message
				}
			}
		}
	}
	if len(invalid) > 0 {
		return domain.Task{}, invalid
	}
	return task, nil
}

// parseDate accepts an empty string as no date.
func parseDate(field, raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, domain.ValidationErrors{field: fmt.Sprintf("The %s field must be a valid date.", field)}
	}
	return &t, nil
}

// parseOptionalUUID returns uuid.Nil for an empty value and false for a
// malformed one.
func parseOptionalUUID(raw string) (uuid.UUID, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
