// internal/submission/record_test.go
//
// Unit-tests for submission validation and row mapping.
//
// Run: go test ./internal/submission -v

package submission

import (
	"errors"
	"testing"
	"time"

	"github.com/yanizio/formgate/internal/store"
)

func TestValidate_MissingFields(t *testing.T) {
	cases := map[string]Input{
		"no name":    {Email: "a@b.co", Phone: "555", Message: "hi"},
		"no email":   {Name: "A", Phone: "555", Message: "hi"},
		"no message": {Name: "A", Email: "a@b.co", Phone: "555"},
		"all empty":  {},
	}
	for name, in := range cases {
		if _, err := Validate(in); !errors.Is(err, ErrMissingField) {
			t.Errorf("%s: err = %v, want ErrMissingField", name, err)
		}
	}
}

func TestValidate_PhoneOptional(t *testing.T) {
	rec, err := Validate(Input{Name: "A", Email: "a@b.co", Message: "hi"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rec.Phone != "" {
		t.Fatalf("phone = %q, want empty", rec.Phone)
	}
}

func TestValidate_EmailShape(t *testing.T) {
	bad := []string{
		"bad-email",
		"no-at.example.com",
		"nodot@example",
		"a@b.",
		"@b.co",
		"a@.co",
		"spaced name@b.co",
		"a@b c.co",
	}
	for _, e := range bad {
		_, err := Validate(Input{Name: "A", Email: e, Phone: "555", Message: "hi"})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("email %q: err = %v, want ErrInvalidEmail", e, err)
		}
	}

	good := []string{
		"a@b.c",
		"a@b.co",
		"first.last@sub.example.com",
		"weird+tag@x.y",
		"!#$%@x.y",
	}
	for _, e := range good {
		if _, err := Validate(Input{Name: "A", Email: e, Phone: "555", Message: "hi"}); err != nil {
			t.Errorf("email %q rejected: %v", e, err)
		}
	}
}

func TestValidate_MissingWinsOverFormat(t *testing.T) {
	// Blank email is a missing field, not a format failure.
	_, err := Validate(Input{Name: "A", Email: "", Phone: "555", Message: "hi"})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("err = %v, want ErrMissingField", err)
	}
}

func TestValidate_StampsParseableTimestamp(t *testing.T) {
	rec, err := Validate(Input{Name: "A", Email: "a@b.co", Phone: "555", Message: "hi"})
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rec.Timestamp == "" {
		t.Fatal("timestamp empty")
	}
	if _, err := time.Parse(time.RFC3339, rec.Timestamp); err != nil {
		t.Fatalf("timestamp %q not RFC-3339: %v", rec.Timestamp, err)
	}
	if rec.Name != "A" || rec.Email != "a@b.co" || rec.Phone != "555" || rec.Message != "hi" {
		t.Fatalf("fields changed: %+v", rec)
	}
}

func TestRowRoundTrip(t *testing.T) {
	rec := Record{Timestamp: "2026-01-02T03:04:05Z", Name: "A", Email: "a@b.co", Phone: "555", Message: "hi"}
	if got := FromRow(rec.Row()); got != rec {
		t.Fatalf("round trip: got %+v, want %+v", got, rec)
	}
}

func TestFromRow_PadsShortRows(t *testing.T) {
	// Backing stores trim trailing empty cells.
	got := FromRow(store.Row{"2026-01-02T03:04:05Z", "A", "a@b.co"})
	want := Record{Timestamp: "2026-01-02T03:04:05Z", Name: "A", Email: "a@b.co"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
