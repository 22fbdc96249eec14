package mw

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type metaWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *metaWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *metaWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Logging writes one line per request with status, size and duration
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		mw := &metaWriter{ResponseWriter: w}

		next.ServeHTTP(mw, r)

		if mw.status == 0 {
			mw.status = http.StatusOK
		}
		log.WithFields(log.Fields{
			"req_id":      RequestIDFromCtx(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      mw.status,
			"size":        mw.size,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}

// Recover turns a handler panic into a 500 instead of a dropped connection
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithField("req_id", RequestIDFromCtx(r.Context())).Errorf("panic: %v", rec)
				http.Error(w, `{"success":false,"errors":["internal error"]}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
