package middleware

import (
	"net/http"
	"time"

	"medicine-tracker/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog loguea una línea por request con status y duración.
// 5xx sale en Error, 4xx en Warn, el resto en Debug.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
		}

		log := GetLogger(r.Context())
		switch {
		case status >= 500:
			log.Error("http request", fields)
		case status >= 400:
			log.Warn("http request", fields)
		default:
			log.Debug("http request", fields)
		}
	})
}
