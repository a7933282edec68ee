// internal/vault/vault.go
//
// Vault client wrapper for formgate.
//
// Context
// -------
// Configuration values may carry a `vault:` reference instead of the secret
// itself, e.g.
//
//	vault:secret/formgate#google_private_key
//
// which names a KV-v2 mount, a path under it, and a key inside the secret.
// The config loader calls Resolve for each such reference at boot.  Values
// are cached per reference so repeated loads in the function-per-request
// deployment do not hammer Vault.
//
// Environment expectations
// ------------------------
//   - VAULT_ADDR  - scheme and host of the Vault server.
//   - VAULT_TOKEN - token (falls back to ~/.vault-token).
//
// Token renewal is out of scope here: both deployment shapes resolve
// secrets once at boot, so the token only has to be valid at that moment.
package vault

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	vaultapi "github.com/hashicorp/vault/api"
)

// RefPrefix marks a config value as a Vault reference.
const RefPrefix = "vault:"

// IsRef reports whether s is a Vault reference.
func IsRef(s string) bool { return strings.HasPrefix(s, RefPrefix) }

// Client is safe for concurrent use.  Create once at startup and inject it;
// the zero value is invalid.
type Client struct {
	api   *vaultapi.Client
	logFn func(string, ...any)

	cacheMu sync.RWMutex
	cache   map[string]string // reference -> resolved value
}

// New constructs a Vault client from the environment.
func New(_ context.Context, logFn func(string, ...any)) (*Client, error) {
	if logFn == nil {
		logFn = func(string, ...any) {}
	}

	cfg := vaultapi.DefaultConfig()
	if err := cfg.ReadEnvironment(); err != nil {
		return nil, fmt.Errorf("vault env cfg: %w", err)
	}

	apiCli, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}

	if tok := os.Getenv("VAULT_TOKEN"); tok != "" {
		apiCli.SetToken(tok)
	}

	return &Client{
		api:   apiCli,
		logFn: logFn,
		cache: make(map[string]string),
	}, nil
}

// Resolve fetches the value a `vault:mount/path#key` reference points at.
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	if !IsRef(ref) {
		return "", fmt.Errorf("not a vault reference: %q", ref)
	}

	c.cacheMu.RLock()
	if val, ok := c.cache[ref]; ok {
		c.cacheMu.RUnlock()
		return val, nil
	}
	c.cacheMu.RUnlock()

	secretPath, key, ok := strings.Cut(strings.TrimPrefix(ref, RefPrefix), "#")
	if !ok || secretPath == "" || key == "" {
		return "", fmt.Errorf("malformed vault reference %q, want vault:mount/path#key", ref)
	}

	val, err := c.getKV(ctx, secretPath, key)
	if err != nil {
		return "", err
	}

	c.cacheMu.Lock()
	c.cache[ref] = val
	c.cacheMu.Unlock()

	c.logFn("vault: resolved %s", ref)
	return val, nil
}

// getKV fetches a single key from a KV-v2 secret.
func (c *Client) getKV(ctx context.Context, secretPath, key string) (string, error) {
	mount, rel := splitMount(secretPath)
	if rel == "" {
		return "", errors.New("vault secret path must include a mount and a relative path")
	}

	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return "", fmt.Errorf("vault get %s: %w", secretPath, err)
	}

	raw, ok := sec.Data[key]
	if !ok {
		return "", fmt.Errorf("key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("value at %s#%s is not a string", secretPath, key)
	}
	return sval, nil
}

// splitMount separates the KV mount from the path under it.
func splitMount(p string) (mount, rel string) {
	parts := strings.SplitN(p, "/", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
