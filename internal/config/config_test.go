package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 60, cfg.Task.Interval)
	assert.Equal(t, 7*24*time.Hour, cfg.Fund.RecentWindow())
	assert.Equal(t, 5, cfg.Fund.TopDonorLimit)
	assert.Equal(t, "info", cfg.Log.GetLevel())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9090"
database:
  driver: memory
fund:
  recent_window_days: 14
  seed_demo: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, 14*24*time.Hour, cfg.Fund.RecentWindow())
	assert.True(t, cfg.Fund.SeedDemo)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: \"9090\"\n"), 0o600))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "funds", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=funds sslmode=disable", d.DSN())
}
