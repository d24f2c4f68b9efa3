package hdsite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/hospital-digital.sqlite", cfg.DatabasePath)
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.BlogCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Clinic Site"
addr = ":8080"
database_path = "data/clinic.sqlite"
admin_username = "editor"
admin_password = "pw"
cookie_secure = true
token_ttl = "24h"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Clinic Site", cfg.Name)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/clinic.sqlite", cfg.DatabasePath)
	assert.Equal(t, "editor", cfg.AdminUsername)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":8080"
admin_username = "editor"
`), 0o644))

	t.Setenv("ADDR", ":9090")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "from-env", cfg.AdminPassword)
}

func TestLoadConfigMissingFileIsFine(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
}
