package api

import (
	"log"
	"net/http"
	"ride-assignment-service/internal/platform/obs"
	"strings"
	"time"
)

// statusWriter captures the final HTTP status code and number of bytes written.
// This helps distinguish "handler returned 200" from "client received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

const requestIDHeader = "X-Request-ID"

// loggingMiddleware tags each request with an id, taken from X-Request-ID when
// the caller sends one, and logs duration and response size under it. The id
// flows into the assignment run and is echoed in the response header.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := obs.ContextWithRequestID(r.Context(), strings.TrimSpace(r.Header.Get(requestIDHeader)))
		reqID := obs.RequestID(ctx)
		w.Header().Set(requestIDHeader, reqID)
		r = r.WithContext(ctx)

		sw := &statusWriter{
			ResponseWriter: w,
			status:         0,
		}

		next.ServeHTTP(sw, r)

		duration := time.Since(start).Milliseconds()

		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			reqID, r.Method, r.URL.RequestURI(), sw.status, sw.bytes, duration,
		)
	})
}
