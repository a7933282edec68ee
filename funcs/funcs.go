// Package funcs adapts the service to function-per-request platforms.
//
// Each exported handler is a plain http.HandlerFunc suitable for
// registration as an isolated serverless function.  All three delegate to
// the same router the long-lived process uses, so routing, CORS, and
// validation behavior cannot drift between deployment shapes.
//
// Initialization is lazy and happens at most once per instance:
// configuration and the store driver are built on the first request.  If
// credentials are absent the instance still serves; health succeeds and
// store-touching routes answer 500, which is the contract for
// misconfigured function deployments.
package funcs

import (
	"context"
	"net/http"
	"sync"

	"github.com/yanizio/formgate/internal/config"
	"github.com/yanizio/formgate/internal/logger"
	"github.com/yanizio/formgate/internal/store"
	"github.com/yanizio/formgate/internal/store/mysqlstore"
	"github.com/yanizio/formgate/internal/store/sheets"
	"github.com/yanizio/formgate/internal/submission"
	"github.com/yanizio/formgate/internal/web"
)

var (
	once    sync.Once
	handler http.Handler
)

// router builds the shared handler stack on first use.
func router() http.Handler {
	once.Do(func() {
		log := logger.NewConsole()
		ctx := context.Background()

		var st store.Store
		cfg, err := config.Load(ctx)
		if err != nil {
			log.Errorw("load config", "err", err)
			st = store.Unavailable(err)
		} else if st, err = buildStore(ctx, cfg); err != nil {
			log.Errorw("store unavailable", "err", err)
			st = store.Unavailable(err)
		}

		svc := submission.NewService(st, log)
		handler = web.NewRouter(web.NewHandler(svc, log))
	})
	return handler
}

func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == "mysql" {
		return mysqlstore.Open(cfg.Store.MySQLDSN)
	}
	return sheets.New(ctx, sheets.Config{
		SpreadsheetID: cfg.Sheets.SpreadsheetID,
		ClientEmail:   cfg.Sheets.ClientEmail,
		PrivateKey:    cfg.Sheets.PrivateKey,
	})
}

// Health serves GET /health.
func Health(w http.ResponseWriter, r *http.Request) { router().ServeHTTP(w, r) }

// Submissions serves GET /submissions.
func Submissions(w http.ResponseWriter, r *http.Request) { router().ServeHTTP(w, r) }

// SubmitForm serves POST /submit-form.
func SubmitForm(w http.ResponseWriter, r *http.Request) { router().ServeHTTP(w, r) }
