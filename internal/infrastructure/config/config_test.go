package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  allowed_origins:
    - "https://recon.pousadavillamar.com.br"
storage:
  database_path: "recon.db"
recon:
  cielo_fee_pct: 0.035
observability:
  logging:
    level: "debug"
    format: "json"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://recon.pousadavillamar.com.br"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "recon.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 0.035, cfg.Recon.CieloFeePct)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("RECON_DB_PATH", "test.db")
	t.Setenv("CIELO_FEE_PCT", "0.05")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadFromEnv()
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, 0.05, cfg.Recon.CieloFeePct)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	os.Unsetenv("PORT")
	os.Unsetenv("RECON_DB_PATH")
	os.Unsetenv("CIELO_FEE_PCT")

	cfg := LoadFromEnv()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "recon.db", cfg.Storage.DatabasePath)
	assert.Equal(t, DefaultCieloFeePct, cfg.Recon.CieloFeePct)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.NotEmpty(t, cfg.Server.AllowedOrigins)
}

func TestLoadOrEnvWithPath_FallbackToEnv(t *testing.T) {
	t.Setenv("RECON_DB_PATH", "fallback.db")

	cfg := LoadOrEnvWithPath("nonexistent.yaml")
	assert.Equal(t, "fallback.db", cfg.Storage.DatabasePath)
}

func TestEnvVarExpansion(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
storage:
  database_path: "${TEST_RECON_DB_PATH}"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	t.Setenv("TEST_RECON_DB_PATH", "expanded.db")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "expanded.db", cfg.Storage.DatabasePath)
}

func TestApplyDefaults_PartialYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 3001\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "recon.db", cfg.Storage.DatabasePath)
	assert.Equal(t, DefaultCieloFeePct, cfg.Recon.CieloFeePct)
}
