// internal/web/cors.go
//
// Fixed-policy CORS layer.
//
// The service is called cross-origin from static frontends, so every
// response carries the same permissive header set; there is no per-origin
// negotiation.  Preflight OPTIONS requests short-circuit here with an empty
// JSON object and never reach routing or the backing store, whatever path
// they name.
package web

import "net/http"

const preflightMaxAge = "86400" // seconds; one day

// CORS attaches the fixed header set and terminates preflight requests.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Max-Age", preflightMaxAge)
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}

		next.ServeHTTP(w, r)
	})
}
