// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from four layers (highest
precedence last):

 1. Optional `.env` file in the working directory.
 2. Optional `conf/formgate.yaml`.
 3. Environment variables prefixed `FORMGATE_`, where `__` maps to "."
    (e.g., `FORMGATE_HTTP__LISTEN_ADDR` -> `http.listen_addr`).
 4. Legacy aliases from the original deployment: `PORT`,
    `GOOGLE_SPREADSHEET_ID`, `GOOGLE_SERVICE_ACCOUNT_EMAIL`, and
    `GOOGLE_PRIVATE_KEY`.  These only fill values the prefixed layers
    left empty, so existing `.env` files keep working unchanged.

After merging, the tree is unmarshalled into strongly-typed structs,
secret references are resolved, defaults applied, and the result is
validated and cached in an `atomic.Pointer` for lock-free reads.

The private key commonly ships with literal `\n` escape sequences (that is
how single-line env files carry PEM material); they are unescaped to real
newlines here so no downstream code has to know about the convention.

Logs use the global *sugared* logger (`zap.S()`) so early boot issues
surface on the bootstrap console even before the file logger is installed.
*/
package config

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/formgate/internal/vault"
)

const (
	yamlPath          = "conf/formgate.yaml"
	defaultListenAddr = ":5000"
	defaultDriver     = "sheets"
)

var current atomic.Pointer[Config]

// Load reads .env, YAML, env overrides, and legacy aliases, resolves
// secrets, validates, and caches the Config.
func Load(ctx context.Context) (*Config, error) {
	// .env (optional, no error if missing)
	_ = godotenv.Load()

	k := koanf.New(".")

	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	// Env overrides: FORMGATE_HTTP__LISTEN_ADDR -> http.listen_addr
	if err := k.Load(env.Provider("FORMGATE_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, "FORMGATE_"), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	applyLegacyAliases(&cfg)
	applyDefaults(&cfg)

	if err := resolveSecrets(ctx, &cfg); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Sheets.PrivateKey = strings.ReplaceAll(cfg.Sheets.PrivateKey, `\n`, "\n")

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"store_driver", cfg.Store.Driver,
		"spreadsheet_configured", cfg.Sheets.SpreadsheetID != "",
	)
	return &cfg, nil
}

// applyLegacyAliases fills fields the prefixed layers left empty from the
// variable names the original deployment used.
func applyLegacyAliases(cfg *Config) {
	if cfg.HTTP.ListenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			cfg.HTTP.ListenAddr = ":" + port
		}
	}
	if cfg.Sheets.SpreadsheetID == "" {
		cfg.Sheets.SpreadsheetID = os.Getenv("GOOGLE_SPREADSHEET_ID")
	}
	if cfg.Sheets.ClientEmail == "" {
		cfg.Sheets.ClientEmail = os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if cfg.Sheets.PrivateKey == "" {
		cfg.Sheets.PrivateKey = os.Getenv("GOOGLE_PRIVATE_KEY")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.ListenAddr == "" {
		cfg.HTTP.ListenAddr = defaultListenAddr
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = defaultDriver
	}
}

// resolveSecrets replaces `vault:` references with the values they point
// at.  The Vault client is only constructed when at least one reference is
// present, so deployments without Vault never touch it.
func resolveSecrets(ctx context.Context, cfg *Config) error {
	refs := []*string{&cfg.Sheets.PrivateKey, &cfg.Store.MySQLDSN}

	needed := false
	for _, ref := range refs {
		if vault.IsRef(*ref) {
			needed = true
			break
		}
	}
	if !needed {
		return nil
	}

	cli, err := vault.New(ctx, zap.S().Infof)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		if !vault.IsRef(*ref) {
			continue
		}
		val, err := cli.Resolve(ctx, *ref)
		if err != nil {
			return err
		}
		*ref = val
	}
	return nil
}

//
// helpers
//

// Get returns the last successfully loaded Config, or nil before Load.
func Get() *Config { return current.Load() }
