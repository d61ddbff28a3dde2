package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ahmadalnaib/project-board/internal/auth"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects?status=completed", nil))

	out := buf.String()
	for _, want := range []string{"status=418", "path=/projects", "status=completed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log line %q", want, out)
		}
	}
}

func TestDataLoaderMiddleware_AttachesLoaders(t *testing.T) {
	store := repository.NewMemoryStore().Store()
	called := false
	handler := DataLoaderMiddleware(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if LoadersFromContext(r.Context()) == nil {
			t.Fatalf("expected loaders in context")
		}
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tasks", nil))
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestUserMiddleware(t *testing.T) {
	id := uuid.New()
	var got uuid.UUID
	handler := UserMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/projects", nil)
	req.Header.Set(auth.HeaderUserID, id.String())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != id {
		t.Fatalf("expected user %s, got %s", id, got)
	}
}
