// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `internal/config/loader.go` calls `validateStruct` after the merged tree
// is unmarshalled and secrets are resolved.  Any tag violation aborts
// startup, so the binary never runs with a malformed listen address or an
// unknown store driver.  Credentials carry no `required` tag on purpose;
// see the model notes.
package config

import "github.com/go-playground/validator/v10"

//
// validator instance (package-level singleton)
//

var v = validator.New()

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
