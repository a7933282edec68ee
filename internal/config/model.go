// internal/config/model.go
//
// Typed configuration model for formgate.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from its overlay layers:
//
//   - optional `.env`                           - dotenv values,
//   - optional `conf/formgate.yaml`             - static file,
//   - `FORMGATE_`-prefixed environment overrides,
//   - legacy unprefixed variables from the original deployment
//     (GOOGLE_SPREADSHEET_ID, GOOGLE_SERVICE_ACCOUNT_EMAIL,
//     GOOGLE_PRIVATE_KEY, PORT).
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client before validation, so the model never stores
// Vault URIs, only plain strings.
//
// Spreadsheet credentials are deliberately not validated as required:
// their absence must surface as a store failure on first use, never as a
// startup crash in the function-per-request deployment.
//
// Notes
// -----
//   - Struct tags use `koanf:"..."`, not `yaml:"..."`; Koanf ignores yaml
//     tags unless configured otherwise.
package config

//
// HTTP section
//

// HTTP holds web-server tunables for the long-lived process.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// Store section
//

// Store selects the backing-store driver.
type Store struct {
	Driver   string `koanf:"driver" validate:"required,oneof=sheets mysql"`
	MySQLDSN string `koanf:"mysql_dsn"`
}

//
// Sheets section
//

// Sheets holds the Google service-account credentials.  PrivateKey may
// arrive with literal `\n` escapes or a `vault:` reference; the loader
// normalizes both before this struct is published.
type Sheets struct {
	SpreadsheetID string `koanf:"spreadsheet_id"`
	ClientEmail   string `koanf:"client_email"`
	PrivateKey    string `koanf:"private_key"`
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the process lifetime.
type Config struct {
	HTTP   HTTP   `koanf:"http"`
	Store  Store  `koanf:"store"`
	Sheets Sheets `koanf:"sheets"`
}
