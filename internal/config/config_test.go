package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokereval/poker"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, poker.LookupBinarySearch, cfg.LookupStrategy())
	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
evaluator {
  lookup = "hash"
}

census {
  workers = 16
}

server {
  address    = "0.0.0.0"
  port       = 9000
  access_log = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, poker.LookupPerfectHash, cfg.LookupStrategy())
	assert.Equal(t, 16, cfg.Census.Workers)
	assert.Equal(t, "0.0.0.0:9000", cfg.ServerAddress())
	assert.True(t, cfg.Server.AccessLog)
	assert.Equal(t, "info", cfg.Log.Level, "missing block falls back to defaults")
}

func TestLoadPartialBlock(t *testing.T) {
	cfg, err := Load(writeConfig(t, `server { port = 7000 }`))
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	_, err := Load(writeConfig(t, `server { port = `))
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Load(writeConfig(t, `server { colour = "red" }`))
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("POKEREVAL_LOOKUP", "chd")
	t.Setenv("POKEREVAL_WORKERS", "3")
	t.Setenv("POKEREVAL_PORT", "9999")
	t.Setenv("POKEREVAL_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, `evaluator { lookup = "hash" }`))
	require.NoError(t, err)
	assert.Equal(t, poker.LookupCHD, cfg.LookupStrategy())
	assert.Equal(t, 3, cfg.Census.Workers)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvironmentParseError(t *testing.T) {
	t.Setenv("POKEREVAL_WORKERS", "many")
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.ErrorContains(t, err, "failed to apply environment")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown lookup", func(c *Config) { c.Evaluator.Lookup = "btree" }, "evaluator"},
		{"zero workers", func(c *Config) { c.Census.Workers = 0 }, "workers"},
		{"too many workers", func(c *Config) { c.Census.Workers = 1000 }, "workers"},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid port"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestLookupStrategyFallsBack(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Evaluator.Lookup = "btree"
	assert.Equal(t, poker.LookupBinarySearch, cfg.LookupStrategy())
}
