package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tinshelf/tinshelf/internal/logging"
)

const allowedMethods = "GET, HEAD, OPTIONS"

// methodMiddleware answers OPTIONS preflights and rejects every method
// other than GET and HEAD before routing. Handlers behind it only ever
// see GET or HEAD.
func methodMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			next.ServeHTTP(w, r)
		case http.MethodOptions:
			w.Header().Set("Allow", allowedMethods)
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Range")
			w.WriteHeader(http.StatusNoContent)
		default:
			w.Header().Set("Allow", allowedMethods)
			sendError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

// recoveryMiddleware guarantees every request produces exactly one
// response, even if a handler panics.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				sendError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
