package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "mindful_server", cfg.AppName)
	assert.Equal(t, "channel", cfg.MessageMode)
	assert.True(t, cfg.StrictTransitions)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
}

func TestLoadDecodesToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[mainConfig]
appName = "mindful-test"
port = 9000

[databaseConfig]
driver = "sqlite"
dsn = "file::memory:"

[bookingConfig]
strictTransitions = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mindful-test", cfg.AppName)
	assert.Equal(t, 9000, cfg.MainConfig.Port)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.False(t, cfg.StrictTransitions)
	// untouched sections keep their defaults
	assert.Equal(t, "logs", cfg.LogPath)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/mindful")
	t.Setenv("AI_API_KEY", "test-key")
	t.Setenv("PORT", "7001")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/mindful", cfg.DSN)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, 7001, cfg.MainConfig.Port)
	assert.Equal(t, "0.0.0.0:7001", cfg.Addr())
}
