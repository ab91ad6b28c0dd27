package middleware

import (
	"net/http"

	"pokedex-web/loader"
)

type ctxKey string

// ResponseLoader attaches a fresh request-scoped response loader to every request
func ResponseLoader(fetch loader.FetchFunc, concurrency int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := loader.WithResponseLoader(r.Context(), loader.NewResponseLoader(fetch, concurrency))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
