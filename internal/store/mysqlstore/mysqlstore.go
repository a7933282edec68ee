// Package mysqlstore is the relational driver for the submission store.  The
// default driver is go-sql-driver/mysql, which also works with MariaDB and
// Cockroach when configured for the MySQL wire protocol.
//
// It maps the store contract onto a single append-only table: EnsureTable
// issues CREATE TABLE IF NOT EXISTS, AppendRow is one INSERT, and ListRows
// selects in primary-key order, which is insertion order.  Operators who do
// not want a Google dependency point `store.driver` at this instead.
package mysqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/formgate/internal/store"
)

// MySQL server error 1146, "table doesn't exist".
const errNoSuchTable = 1146

const createTable = `
CREATE TABLE IF NOT EXISTS submission (
    id        BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    ts        VARCHAR(64)  NOT NULL,
    name      VARCHAR(255) NOT NULL,
    email     VARCHAR(255) NOT NULL,
    phone     VARCHAR(64)  NOT NULL DEFAULT '',
    message   TEXT         NOT NULL
)`

const insertRow = `INSERT INTO submission (ts, name, email, phone, message) VALUES (?, ?, ?, ?, ?)`

const selectRows = `SELECT ts, name, email, phone, message FROM submission ORDER BY id ASC`

// Store implements store.Store on a *sqlx.DB.  Safe for concurrent use; the
// pool serializes nothing beyond what the database itself does.
type Store struct {
	db *sqlx.DB
}

var _ store.Store = (*Store)(nil)

// Open returns a Store with sane pool defaults: 15 max open, 5 idle, and a
// 30-minute connection lifetime.  It pings before returning so callers fail
// fast during bootstrap.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	db.SetMaxOpenConns(15)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing pool.  Used by tests with sqlmock.
func NewWithDB(db *sqlx.DB) *Store { return &Store{db: db} }

// Close releases the pool.
func (s *Store) Close() error { return s.db.Close() }

// EnsureTable creates the submission table if absent.  The relational header
// is the schema itself, so there is no separate header row to write.
func (s *Store) EnsureTable(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("%w: create table: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// AppendRow inserts one submission row.
func (s *Store) AppendRow(ctx context.Context, row store.Row) error {
	if len(row) != len(store.Header) {
		return fmt.Errorf("%w: row has %d cells, want %d", store.ErrWriteFailed, len(row), len(store.Header))
	}
	args := make([]interface{}, len(row))
	for i, v := range row {
		args[i] = v
	}
	if _, err := s.db.ExecContext(ctx, insertRow, args...); err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// ListRows returns every submission in insertion order.  A table that has
// not been created yet yields an empty slice, matching the spreadsheet
// driver's lazy-creation behavior.
func (s *Store) ListRows(ctx context.Context) ([]store.Row, error) {
	res, err := s.db.QueryContext(ctx, selectRows)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errNoSuchTable {
			return []store.Row{}, nil
		}
		return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}
	defer res.Close()

	rows := []store.Row{}
	for res.Next() {
		row := make(store.Row, len(store.Header))
		if err := res.Scan(&row[0], &row[1], &row[2], &row[3], &row[4]); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", store.ErrReadFailed, err)
		}
		rows = append(rows, row)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrReadFailed, err)
	}
	return rows, nil
}
