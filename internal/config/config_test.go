package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/serialcheck/internal/config"
)

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_ReadsTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serialcheck.toml")
	content := `
checker_prefix = "/opt/smpt/bin"
default_timeout_seconds = 120
output_root = "/tmp/runs"
strict_proof_parsing = true
log_level = "debug"
log_pretty = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/smpt/bin", cfg.CheckerPrefix)
	assert.Equal(t, 120, cfg.DefaultTimeoutSeconds)
	assert.Equal(t, "/tmp/runs", cfg.OutputRoot)
	assert.True(t, cfg.StrictProofParsing)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
}

func TestLoad_EnvVarOverridesCheckerPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serialcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`checker_prefix = "/from/file"`), 0o644))

	t.Setenv(config.CheckerPrefixEnvVar, "/from/env")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.CheckerPrefix)
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestConfig_Timeout(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 30, int(cfg.Timeout().Seconds()))
}
