// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// statusRecorder wraps http.ResponseWriter to capture the status code, the
// response size, and the body of server-error responses.
type statusRecorder struct {
	http.ResponseWriter
	status  int
	size    int
	failure []byte
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	// Error bodies are one-line JSON; keep a bounded copy for the log.
	if rec.status >= http.StatusInternalServerError && len(rec.failure) < 256 {
		rec.failure = append(rec.failure, b...)
		if len(rec.failure) > 256 {
			rec.failure = rec.failure[:256]
		}
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.size += n
	return n, err
}

// RequestLogger logs one line per request and tags responses with an
// X-Request-ID header. Without verbose, only failed requests (status 400
// and up) are logged. Server errors additionally include the error body,
// so a save failure and a timestamp-bump failure are distinguishable from
// the log alone.
func RequestLogger(verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()[:8]
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if !verbose && rec.status < http.StatusBadRequest {
				return
			}

			log.Print(requestLine(requestID, r, rec, time.Since(start)))
		})
	}
}

func requestLine(requestID string, r *http.Request, rec *statusRecorder, elapsed time.Duration) string {
	line := fmt.Sprintf("[%s] %s %s %d %dB %v",
		requestID, r.Method, r.URL.Path, rec.status, rec.size, elapsed)
	if body := strings.TrimSpace(string(rec.failure)); body != "" {
		line += " " + body
	}
	return line
}
