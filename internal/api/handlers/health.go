package handlers

import (
	"net/http"
)

// Health is a liveness check for load balancers; HEAD skips the body.
func Health(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}
