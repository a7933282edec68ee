// internal/submission/record.go
//
// Submission record and server-side validation.
//
// Context
// -------
// A submission is the one domain entity in the system: four caller-supplied
// text fields plus a server-assigned timestamp.  Validation is intentionally
// loose to preserve the behavior browser clients already depend on: name,
// email, and message must be present, phone is free text, and the email
// check is a shape test (`x@y.z`), not an RFC-5322 parse.  Rejecting input
// the old backend accepted would be a breaking change.
package submission

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/formgate/internal/store"
)

// Client-facing validation failures.  The router maps both to 400 with the
// error text as the response message.
var (
	ErrMissingField = errors.New("All fields are required")
	ErrInvalidEmail = errors.New("Invalid email format")
)

// emailShape accepts one or more non-space, non-@ characters, an @, more of
// the same, a dot, and more of the same.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Registration only fails for a blank tag name.
	_ = val.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return val
}

// Input is the raw submit-form request body.
type Input struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required,looseemail"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// Record is a validated submission with its server-assigned timestamp.
type Record struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
}

// Validate checks in against the submission contract and, on success,
// returns a Record carrying the fields unchanged plus an RFC-3339 UTC
// timestamp.  Missing-field failures win over format failures so a blank
// email reports ErrMissingField, not ErrInvalidEmail.
func Validate(in Input) (Record, error) {
	if err := v.Struct(in); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return Record{}, ErrMissingField
		}
		for _, fe := range fields {
			if fe.Tag() == "required" {
				return Record{}, ErrMissingField
			}
		}
		return Record{}, ErrInvalidEmail
	}

	return Record{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
	}, nil
}

// Row projects the record into store column order.
func (r Record) Row() store.Row {
	return store.Row{r.Timestamp, r.Name, r.Email, r.Phone, r.Message}
}

// FromRow rebuilds a record from a stored row.  Short rows (trailing empty
// cells trimmed by the backing store) are padded with empty strings.
func FromRow(row store.Row) Record {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Record{
		Timestamp: cell(0),
		Name:      cell(1),
		Email:     cell(2),
		Phone:     cell(3),
		Message:   cell(4),
	}
}
