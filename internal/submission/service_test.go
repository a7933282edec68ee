// internal/submission/service_test.go
//
// Unit-tests for the writer/reader service over a fake store.

package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/yanizio/formgate/internal/store"
)

// fakeStore records calls and serves canned rows.
type fakeStore struct {
	ensureCalls int
	appendCalls int
	listCalls   int

	rows      []store.Row
	ensureErr error
	appendErr error
	listErr   error
}

func (f *fakeStore) EnsureTable(context.Context) error {
	f.ensureCalls++
	return f.ensureErr
}

func (f *fakeStore) AppendRow(_ context.Context, row store.Row) error {
	f.appendCalls++
	if f.appendErr != nil {
		return f.appendErr
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStore) ListRows(context.Context) ([]store.Row, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func TestWrite_AppendsExactlyOneRow(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs, nil)

	rec := Record{Timestamp: "2026-01-02T03:04:05Z", Name: "A", Email: "a@b.co", Phone: "555", Message: "hi"}
	if err := svc.Write(context.Background(), rec); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if fs.ensureCalls != 1 || fs.appendCalls != 1 {
		t.Fatalf("ensure=%d append=%d, want 1 and 1", fs.ensureCalls, fs.appendCalls)
	}
	if len(fs.rows) != 1 {
		t.Fatalf("rows stored = %d, want 1", len(fs.rows))
	}
	want := store.Row{"2026-01-02T03:04:05Z", "A", "a@b.co", "555", "hi"}
	for i, cell := range want {
		if fs.rows[0][i] != cell {
			t.Fatalf("row[%d] = %q, want %q", i, fs.rows[0][i], cell)
		}
	}
}

func TestWrite_EnsureFailureSkipsAppend(t *testing.T) {
	fs := &fakeStore{ensureErr: store.ErrUnavailable}
	svc := NewService(fs, nil)

	err := svc.Write(context.Background(), Record{Name: "A"})
	if !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if fs.appendCalls != 0 {
		t.Fatalf("append called %d times after ensure failure", fs.appendCalls)
	}
}

func TestWrite_PropagatesAppendError(t *testing.T) {
	fs := &fakeStore{appendErr: store.ErrWriteFailed}
	svc := NewService(fs, nil)

	if err := svc.Write(context.Background(), Record{Name: "A"}); !errors.Is(err, store.ErrWriteFailed) {
		t.Fatalf("err = %v, want ErrWriteFailed", err)
	}
}

func TestList_MapsRowsInOrder(t *testing.T) {
	fs := &fakeStore{rows: []store.Row{
		{"t1", "A", "a@b.co", "1", "first"},
		{"t2", "B", "b@c.io", "2", "second"},
	}}
	svc := NewService(fs, nil)

	recs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Name != "A" || recs[1].Name != "B" {
		t.Fatalf("order broken: %+v", recs)
	}
}

func TestList_IdempotentWithoutWrites(t *testing.T) {
	fs := &fakeStore{rows: []store.Row{{"t1", "A", "a@b.co", "1", "hi"}}}
	svc := NewService(fs, nil)

	first, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("first List: %v", err)
	}
	second, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("second List: %v", err)
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("reads differ: %+v vs %+v", first, second)
	}
	// Every call re-reads; nothing is cached.
	if fs.listCalls != 2 {
		t.Fatalf("listCalls = %d, want 2", fs.listCalls)
	}
}

func TestList_EmptyStoreIsEmptySlice(t *testing.T) {
	svc := NewService(&fakeStore{}, nil)

	recs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("recs = %#v, want empty non-nil slice", recs)
	}
}
