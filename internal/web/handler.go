// internal/web/handler.go
//
// Route handlers.
//
// Context
// -------
// Three routes: liveness, bulk read-back, and the submit path.  The submit
// path is validate-then-append; on any validation failure the backing store
// is never touched.  Store failures of every kind collapse to a generic 500
// message so internal detail stays in the logs.
package web

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/formgate/internal/metrics"
	"github.com/yanizio/formgate/internal/submission"
)

// Handler serves the three routes against one submission service.
type Handler struct {
	svc *submission.Service
	log *zap.SugaredLogger
}

// NewHandler wires the service.  A nil logger falls back to the process
// global.
func NewHandler(svc *submission.Service, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{svc: svc, log: log}
}

// Health reports liveness only.  It deliberately does not probe the backing
// store; a dead spreadsheet must not fail the liveness check.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ListSubmissions re-reads the full table on every call.  An absent or
// empty table is a successful empty list.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, resultBody{
			Success: false,
			Message: "Error fetching submissions",
		})
		return
	}

	writeJSON(w, http.StatusOK, listBody{Success: true, Submissions: recs})
}

// SubmitForm validates the posted fields and appends one row.
//
// A body that does not decode into four string fields is reported the same
// way as missing fields: the old backend's clients only ever distinguish
// "missing" from "bad email", and inventing a third message would break
// their error display.
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var in submission.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		metrics.ValidationFailuresTotal.Inc()
		writeJSON(w, http.StatusBadRequest, resultBody{
			Success: false,
			Message: submission.ErrMissingField.Error(),
		})
		return
	}

	rec, err := submission.Validate(in)
	if err != nil {
		metrics.ValidationFailuresTotal.Inc()
		writeJSON(w, http.StatusBadRequest, resultBody{Success: false, Message: err.Error()})
		return
	}

	if err := h.svc.Write(r.Context(), rec); err != nil {
		writeJSON(w, http.StatusInternalServerError, resultBody{
			Success: false,
			Message: "Internal server error",
		})
		return
	}

	writeJSON(w, http.StatusOK, resultBody{
		Success: true,
		Message: "Form submitted successfully",
	})
}

// MethodNotAllowed answers every unsupported (method, path) pair, including
// unknown paths.  Clients get one uniform refusal and the store is never
// consulted.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, resultBody{
		Success: false,
		Message: "Method not allowed",
	})
}
