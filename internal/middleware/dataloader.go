package middleware

import (
	"context"
	"net/http"

	"github.com/ahmadalnaib/project-board/internal/entityloader"
	"github.com/ahmadalnaib/project-board/internal/repository"
)

type ctxKey string

const loadersKey ctxKey = "loaders"

// DataLoaderMiddleware attaches request-scoped loaders to the request context
func DataLoaderMiddleware(store repository.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), entityloader.NewLoaders(store))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLoaders stores loaders in ctx.
func WithLoaders(ctx context.Context, loaders *entityloader.Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, loaders)
}

// LoadersFromContext retrieves the loaders from context
func LoadersFromContext(ctx context.Context) *entityloader.Loaders {
	if l, ok := ctx.Value(loadersKey).(*entityloader.Loaders); ok {
		return l
	}
	return nil
}
