package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves GET /projects/export and GET /tasks/export. The query
// string is interpreted exactly like the list endpoints, minus paging.
type Handler struct {
	service *Service
	store   repository.Store
}

func NewHTTPHandler(service *Service, store repository.Store) http.Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params := listing.ParseQueryParams(r.URL.Query())
	var (
		buf      bytes.Buffer
		resource string
		err      error
	)
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/projects/export":
		resource = listing.Projects.Name
		_, err = Write[domain.Project](r.Context(), h.service, &buf, ProjectSheet, h.store.Projects, listing.Projects.Criteria(params))
	case "/tasks/export":
		resource = listing.Tasks.Name
		_, err = Write[domain.Task](r.Context(), h.service, &buf, TaskSheet, h.store.Tasks, listing.Tasks.Criteria(params))
	default:
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.service.logger.ErrorContext(r.Context(), "export failed", "resource", resource, "query", r.URL.RawQuery, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.service.FileName(resource)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
