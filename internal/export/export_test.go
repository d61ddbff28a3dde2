package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

func seed(t *testing.T, n int) repository.Store {
	t.Helper()
	store := repository.NewMemoryStore().Store()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		status := domain.StatusPending
		if i%2 == 0 {
			status = domain.StatusCompleted
		}
		project := domain.NewProject(fmt.Sprintf("Project %02d", i+1), "", status, nil, uuid.Nil)
		project.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_, err := store.Projects.Create(context.Background(), project)
		require.NoError(t, err)
	}
	return store
}

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWrite_PagesThroughEveryMatchingRow(t *testing.T) {
	store := seed(t, 7)
	service := NewService(WithPageSize(2))
	criteria := listing.Projects.Criteria(listing.QueryParams{
		"status":         "completed",
		"sort_field":     "name",
		"sort_direction": "asc",
	})

	var buf bytes.Buffer
	n, err := Write[domain.Project](context.Background(), service, &buf, ProjectSheet, store.Projects, criteria)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	rows := readRows(t, buf.Bytes(), "Projects")
	require.Len(t, rows, 5)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Project 01", rows[1][1])
	assert.Equal(t, "Project 07", rows[4][1])
	assert.Equal(t, "completed", rows[1][2])
}

func TestWrite_RespectsMaxRows(t *testing.T) {
	store := seed(t, 5)
	service := NewService(WithPageSize(2), WithMaxRows(3))

	var buf bytes.Buffer
	n, err := Write[domain.Project](context.Background(), service, &buf, ProjectSheet, store.Projects, listing.Projects.Criteria(nil))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, readRows(t, buf.Bytes(), "Projects"), 4)
}

func TestHandler_ServesWorkbook(t *testing.T) {
	store := seed(t, 3)
	clock := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	handler := NewHTTPHandler(NewService(WithClock(clock)), store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/export?status=pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "projects-20260102-030405.xlsx")
	assert.Len(t, readRows(t, rec.Body.Bytes(), "Projects"), 2)
}

func TestHandler_UnknownPath(t *testing.T) {
	handler := NewHTTPHandler(NewService(), seed(t, 0))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/export", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type brokenProjects struct {
	repository.ProjectRepository
	err error
}

func (b brokenProjects) Find(context.Context, listing.Criteria, int, int) ([]domain.Project, error) {
	return nil, b.err
}

func TestHandler_FailureIsLoggedNotEchoed(t *testing.T) {
	var logs bytes.Buffer
	service := NewService(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	store := repository.Store{Projects: brokenProjects{err: errors.New("dial tcp 10.0.0.7:5432: connection refused")}}
	handler := NewHTTPHandler(service, store)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/projects/export", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", strings.TrimSpace(rec.Body.String()))
	assert.Contains(t, logs.String(), "connection refused")
}
