package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every request with an X-Request-ID so log lines and error
// responses can be correlated. Incoming IDs from trusted proxies are kept.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
