// cmd/web/main.go
//
// formgate - long-lived HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Start the rotating file logger (tees to console when running in a
//     TTY).
//
//  2. Load layered configuration (.env, yaml, env overrides, legacy
//     aliases, Vault references).
//
//  3. Build the backing-store driver named by `store.driver`.  A driver
//     that cannot be built (missing credentials, unreachable database)
//     does NOT abort boot: the process serves with an always-failing
//     store so /health stays usable and the misconfiguration surfaces as
//     a 500 on the first store-touching request.
//
//  4. Warm the store in the background: connect and establish the table
//     and header row, mirroring what the original deployment did at
//     startup.  Failure is logged and otherwise ignored.
//
//  5. Expose Prometheus /metrics next to the business routes and serve
//     until SIGINT/SIGTERM, then drain gracefully.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanizio/formgate/internal/config"
	"github.com/yanizio/formgate/internal/logger"
	"github.com/yanizio/formgate/internal/server"
	"github.com/yanizio/formgate/internal/store"
	"github.com/yanizio/formgate/internal/store/mysqlstore"
	"github.com/yanizio/formgate/internal/store/sheets"
	"github.com/yanizio/formgate/internal/submission"
	"github.com/yanizio/formgate/internal/web"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// buildStore constructs the configured driver.
func buildStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "mysql":
		return mysqlstore.Open(cfg.Store.MySQLDSN)
	default:
		return sheets.New(ctx, sheets.Config{
			SpreadsheetID: cfg.Sheets.SpreadsheetID,
			ClientEmail:   cfg.Sheets.ClientEmail,
			PrivateKey:    cfg.Sheets.PrivateKey,
		})
	}
}

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	//
	// Backing store - never fatal, see boot sequence note 3.
	//
	st, err := buildStore(ctx, cfg)
	if err != nil {
		logOut.Errorw("store unavailable, serving anyway", "driver", cfg.Store.Driver, "err", err)
		st = store.Unavailable(err)
	}

	svc := submission.NewService(st, logOut)

	// Warm-up: establish table and header so the first submit doesn't pay
	// for it.  Best effort only.
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := st.EnsureTable(warmCtx); err != nil {
			logOut.Warnw("store warm-up failed", "err", err)
			return
		}
		logOut.Infow("store ready", "driver", cfg.Store.Driver)
	}()

	//
	// Routes: business router plus the ops-only metrics endpoint.
	//
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", web.NewRouter(web.NewHandler(svc, logOut)))

	srv := server.New(cfg.HTTP.ListenAddr, mux)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)

	if err := server.Run(ctx, srv); err != nil {
		logOut.Fatalw("server stopped", "err", err)
	}
	logOut.Infow("shutdown complete")
}
