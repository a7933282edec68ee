// internal/submission/service.go
//
// Writer and reader over the backing store.
//
// One append per successful write, plus at most one header-establishing
// EnsureTable round-trip; every read re-fetches the full table.  No retry,
// no caching, no cross-request state.  Dependency failures are logged here
// with operation context; callers surface only a generic message.
package submission

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/formgate/internal/metrics"
	"github.com/yanizio/formgate/internal/store"
)

// Service owns the write and read paths.  Construct once and share; it is
// as concurrency-safe as the store it wraps.
type Service struct {
	store store.Store
	log   *zap.SugaredLogger
}

// NewService wires a store and a logger.  A nil logger falls back to the
// process-global zap logger installed at boot.
func NewService(st store.Store, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.S()
	}
	return &Service{store: st, log: log}
}

// Write persists one validated record as a new row, establishing the table
// and header first.  Errors propagate unwrapped so the caller can classify
// them against the store sentinels.
func (s *Service) Write(ctx context.Context, rec Record) error {
	if err := s.store.EnsureTable(ctx); err != nil {
		s.log.Errorw("ensure submission table failed", "err", err)
		metrics.StoreErrorsTotal.Inc()
		return err
	}
	if err := s.store.AppendRow(ctx, rec.Row()); err != nil {
		s.log.Errorw("append submission failed", "err", err)
		metrics.StoreErrorsTotal.Inc()
		return err
	}

	metrics.SubmissionsTotal.Inc()
	s.log.Infow("submission stored", "name", rec.Name, "email", rec.Email)
	return nil
}

// List returns every stored submission oldest-first.  A table that does not
// exist yet is an empty result, not an error.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	rows, err := s.store.ListRows(ctx)
	if err != nil {
		s.log.Errorw("list submissions failed", "err", err)
		metrics.StoreErrorsTotal.Inc()
		return nil, err
	}

	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, FromRow(row))
	}
	return recs, nil
}
