package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://localhost:5432/funcionarios
jwt:
  secret_key: file-secret
  token_duration: 1h
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/funcionarios", cfg.Database.URL)
	assert.Equal(t, "file-secret", cfg.JWT.SecretKey)
	assert.Equal(t, time.Hour, cfg.JWT.TokenDuration)

	// defaults survive where the file is silent
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://localhost:5432/funcionarios
jwt:
  secret_key: file-secret
`), 0o600))

	t.Setenv("FUNCIONARIOS_JWT__SECRET_KEY", "env-secret")
	t.Setenv("FUNCIONARIOS_SERVER__PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("FUNCIONARIOS_JWT__SECRET_KEY", "s")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.url")
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("FUNCIONARIOS_DATABASE__URL", "postgres://localhost:5432/x")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret_key")
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
