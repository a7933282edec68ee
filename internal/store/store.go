// Package store defines the persistence boundary for submission rows.
//
// The backing store is an external tabular system of record (Google Sheets
// in the default deployment, a relational table as an alternative).  Drivers
// implement the Store interface; validation and routing code never touch a
// driver directly, so the store can be swapped without touching either.
//
// The model is deliberately flat: one table, a fixed header row written
// lazily before the first data row, and append-only data rows in insertion
// order.  Rows are never updated or deleted by this service.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Column order of the backing table.  The header row and every data row use
// this order; drivers must not reorder it.
var Header = []string{"Timestamp", "Name", "Email", "Phone", "Message"}

// Row is one submission in Header column order.
type Row []string

// Sentinel errors drivers wrap their failures in.  Callers classify with
// errors.Is and report a generic message to the client; the wrapped detail
// is for logs only.
var (
	// ErrUnavailable covers authentication and connection failures.
	ErrUnavailable = errors.New("store unavailable")

	// ErrWriteFailed covers appends rejected by the backing store.
	ErrWriteFailed = errors.New("store write failed")

	// ErrReadFailed covers row fetches rejected by the backing store.
	ErrReadFailed = errors.New("store read failed")
)

// Store is the minimal contract a backing-store driver provides.  All
// methods block on external I/O and honor ctx cancellation to whatever
// extent the underlying client does.
//
// None of the operations are transactionally linked: a concurrent
// EnsureTable race can in principle write two header rows.  That matches
// the service's documented (lack of) ordering guarantees.
type Store interface {
	// EnsureTable resolves the backing table, creating it and its header
	// row if absent.  Idempotent from the caller's perspective.
	EnsureTable(ctx context.Context) error

	// AppendRow appends one data row after the last existing row.  The
	// caller must EnsureTable first; drivers do not re-check the header.
	AppendRow(ctx context.Context, row Row) error

	// ListRows returns every data row (header excluded) in insertion
	// order, oldest first.  A missing or empty table yields an empty
	// slice, not an error.
	ListRows(ctx context.Context) ([]Row, error)
}

// Unavailable returns a Store whose every operation fails with
// ErrUnavailable wrapping cause.  Used when a deployment boots without
// usable credentials: the process still serves, health stays green, and
// the configuration problem surfaces on the first store-touching request.
func Unavailable(cause error) Store { return unavailable{cause: cause} }

type unavailable struct{ cause error }

func (u unavailable) err() error {
	if errors.Is(u.cause, ErrUnavailable) {
		return u.cause
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

func (u unavailable) EnsureTable(context.Context) error       { return u.err() }
func (u unavailable) AppendRow(context.Context, Row) error    { return u.err() }
func (u unavailable) ListRows(context.Context) ([]Row, error) { return nil, u.err() }
