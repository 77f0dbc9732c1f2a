package logger

import (
	"net/http"
	"time"

	"github.com/alexisbeaulieu97/prism/internal/ports"
)

// AccessEntry describes one served request.
type AccessEntry struct {
	Method        string
	Path          string
	Status        int
	Bytes         int
	Duration      time.Duration
	CorrelationID string
	// Theme is the theme family the response was rendered with, if any.
	Theme string
}

// ThemeHeader carries the rendered theme family from handler to middleware.
const ThemeHeader = "X-Prism-Theme"

type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Middleware tags every request with a correlation ID and writes an access
// log entry once the handler returns.
func (l *Logger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := ports.GenerateCorrelationID()
		r = r.WithContext(ports.WithCorrelationID(r.Context(), id))

		rec := &recorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		l.Request(AccessEntry{
			Method:        r.Method,
			Path:          r.URL.Path,
			Status:        rec.status,
			Bytes:         rec.bytes,
			Duration:      time.Since(start),
			CorrelationID: id,
			Theme:         rec.Header().Get(ThemeHeader),
		})
	})
}
