package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMustLoadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: "dev"
http:
  address: ":9090"
storage:
  path: "/tmp/test.db"
auth:
  secret: "s3cret"
  token_ttl: 1h
calls:
  ring_timeout: 10s
status:
  ttl: 6h
`), 0o600))

	cfg := MustLoadPath(path)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, "/tmp/test.db", cfg.Storage.Path)
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, 10*time.Second, cfg.Calls.RingTimeout)
	require.Equal(t, 6*time.Hour, cfg.Status.TTL)
	// defaults fill what the file leaves out
	require.NotEmpty(t, cfg.CORS.AllowOrigins)
	require.Equal(t, "talkline", cfg.Auth.Issuer)
}

func TestMustLoadPathDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: \"local\"\n"), 0o600))

	cfg := MustLoadPath(path)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, 30*time.Second, cfg.Calls.RingTimeout)
	require.Equal(t, 12*time.Hour, cfg.Status.TTL)
}

func TestMustLoadPathMissingFile(t *testing.T) {
	require.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
