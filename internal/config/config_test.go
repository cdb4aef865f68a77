package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	assert.Equal(t, "staging", cfg.Env)
	assert.Equal(t, 3040, cfg.HTTPPort)
	assert.Equal(t, ".data", cfg.DataDir)
	assert.Equal(t, 5, cfg.MaxChecks)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.ProbeInterval)
	assert.True(t, cfg.ProbeEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DATA_DIR", "/var/lib/uptime")
	t.Setenv("HASHING_SECRET", "s3cr3t")
	t.Setenv("MAX_CHECKS", "10")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("PROBE_INTERVAL", "5s")
	t.Setenv("PROBE_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "/var/lib/uptime", cfg.DataDir)
	assert.Equal(t, "s3cr3t", cfg.HashingSecret)
	assert.Equal(t, 10, cfg.MaxChecks)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.ProbeInterval)
	assert.False(t, cfg.ProbeEnabled)
}

func TestLoad_FileOverlay(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte("http_port: 9090\nmax_checks: 3\n"), 0o600)
	assert.NoError(t, err)
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()

	assert.Equal(t, 9090, cfg.HTTPPort, "file overrides environment")
	assert.Equal(t, 3, cfg.MaxChecks)
	assert.Equal(t, "staging", cfg.Env, "untouched values keep env defaults")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "invalid")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to invalid HTTP_PORT")
		}
	}()
	Load()
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to invalid TOKEN_TTL")
		}
	}()
	Load()
}

func TestLoad_FailsValidation(t *testing.T) {
	t.Setenv("ENV", "nonsense")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to unknown environment")
		}
	}()
	Load()
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", "/does/not/exist.yaml")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic due to missing CONFIG_FILE")
		}
	}()
	Load()
}
