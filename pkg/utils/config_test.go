package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "@every 1m", cfg.Sweeper.Schedule)
	assert.Equal(t, 30*time.Second, cfg.Sweeper.Timeout)
	assert.True(t, cfg.Sweeper.Enabled)
	assert.Equal(t, 24, cfg.Session.ExpiryHours)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigFrom_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9000\nDB_HOST=localhost\nDB_NAME=hotels\nSWEEP_TIMEOUT=5s\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_HOST", "db.internal")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hotels", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Sweeper.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
