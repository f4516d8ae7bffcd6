package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Green Acre", "mixed")
	cfg.Business.Sites = []string{"Home Farm", "North Paddock"}
	cfg.Database = DatabaseConfig{Driver: "postgres", DSN: "postgres://farm@localhost/farmdesk?sslmode=disable"}
	cfg.Permissions.CacheTTL = 90 * time.Second

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Green Acre", "dairy")

	assert.Equal(t, "Green Acre", cfg.Business.Name)
	assert.Equal(t, "dairy", cfg.Business.Profile)
	assert.Equal(t, "01-01", cfg.Fiscal.YearStart)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "farmdesk.db", cfg.Database.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Permissions.CacheTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.Empty(t, cfg.Business.Sites)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Hill Farm\npermissions:\n  cache_ttl: 30s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Hill Farm", cfg.Business.Name)
	assert.Equal(t, 30*time.Second, cfg.Permissions.CacheTTL)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_NegativeTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("permissions:\n  cache_ttl: -1m\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Green Acre", "poultry")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Green Acre")
	assert.Contains(t, contents, "profile: poultry")
	assert.Contains(t, contents, "year_start: 01-01")
	assert.Contains(t, contents, "cache_ttl: 5m0s")
	assert.Contains(t, contents, "driver: sqlite3")
}
