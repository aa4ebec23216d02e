package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/tinshelf/tinshelf/internal/metrics"
)

// basicAuthMiddleware checks every request against the single static
// credential pair. Comparison goes through SHA-256 digests so it runs in
// constant time regardless of credential length.
func basicAuthMiddleware(user, password string, next http.Handler) http.Handler {
	wantUser := sha256.Sum256([]byte(user))
	wantPass := sha256.Sum256([]byte(password))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, ok := r.BasicAuth()
		if ok {
			u := sha256.Sum256([]byte(gotUser))
			p := sha256.Sum256([]byte(gotPass))
			userMatch := subtle.ConstantTimeCompare(wantUser[:], u[:]) == 1
			passMatch := subtle.ConstantTimeCompare(wantPass[:], p[:]) == 1
			if userMatch && passMatch {
				metrics.RecordAuthAttempt(true)
				next.ServeHTTP(w, r)
				return
			}
		}
		metrics.RecordAuthAttempt(false)
		w.Header().Set("WWW-Authenticate", `Basic realm="tinshelf"`)
		sendError(w, http.StatusUnauthorized, "authentication required")
	})
}
