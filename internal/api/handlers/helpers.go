package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"ride-assignment-service/internal/platform/obs"
)

// errorResponse carries the request id so clients can quote it when a run fails.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode failed: method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg, RequestID: obs.RequestID(r.Context())})
}

// logFailure records a server-side failure under the request id.
func logFailure(r *http.Request, op string, err error) {
	log.Printf("req_id=%s op=%s err=%v", obs.RequestID(r.Context()), op, err)
}
