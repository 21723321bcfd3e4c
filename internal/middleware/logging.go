package middleware

import (
	"net/http"
	"time"

	"journal-transporter/transporter/internal/logging"

	"go.uber.org/zap/zapcore"
)

// redactedHeaders are never written to the trace log.
var redactedHeaders = map[string]bool{
	"Authorization": true,
	"X-Api-Key":     true,
	"Cookie":        true,
}

type respLogger struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (l *respLogger) WriteHeader(code int) {
	l.status = code
	l.ResponseWriter.WriteHeader(code)
}

func (l *respLogger) Write(b []byte) (int, error) {
	n, err := l.ResponseWriter.Write(b)
	l.bytes += n
	return n, err
}

// Logging traces each request and response at debug level. Credentials are
// redacted and bodies are not logged since they may carry whole files.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.GetLogger()
		if !log.Desugar().Core().Enabled(zapcore.DebugLevel) {
			next.ServeHTTP(w, r)
			return
		}

		headers := map[string]string{}
		for name, vals := range r.Header {
			if redactedHeaders[name] {
				headers[name] = "[redacted]"
				continue
			}
			if len(vals) > 0 {
				headers[name] = vals[0]
			}
		}
		log.Debugw("→ request",
			"request_id", RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"content_length", r.ContentLength,
			"headers", headers,
		)

		lw := &respLogger{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(lw, r)

		log.Debugw("← response",
			"request_id", RequestIDFromContext(r.Context()),
			"status_code", lw.status,
			"status", http.StatusText(lw.status),
			"bytes", lw.bytes,
			"duration", time.Since(start).String(),
		)
	})
}
