// internal/web/router.go
//
// Router assembly.
//
// Request life-cycle: request-id and real-ip tagging, panic recovery,
// structured request log, fixed CORS set (with the OPTIONS short-circuit),
// then method/path dispatch.  Both deployment shapes build their handler
// stack through NewRouter so routing behavior cannot drift between them.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter builds the full middleware and route stack.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(h.log))
	r.Use(CORS)

	r.Get("/health", h.Health)
	r.Get("/submissions", h.ListSubmissions)
	r.Post("/submit-form", h.SubmitForm)

	// Anything else, wrong method or wrong path, gets the one uniform 405.
	r.NotFound(MethodNotAllowed)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}

// requestLogger emits one structured line per request.
func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
