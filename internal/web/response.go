// internal/web/response.go
//
// JSON response envelopes.  Every business response carries a `success`
// boolean; health and preflight responses are the two exceptions, matching
// what deployed clients already parse.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/yanizio/formgate/internal/submission"
)

type resultBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listBody struct {
	Success     bool                `json:"success"`
	Submissions []submission.Record `json:"submissions"`
}

type healthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// writeJSON encodes v with the right content type.  Encode errors are
// ignored: the status line is already on the wire and there is nothing
// useful left to do for a broken client connection.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
