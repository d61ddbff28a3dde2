package middleware

import (
	"net/http"

	"github.com/ahmadalnaib/project-board/internal/auth"
)

// UserMiddleware copies the acting user header into the request context.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := auth.UserIDFromRequest(r); ok {
			r = r.WithContext(auth.ContextWithUserID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
