package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUBBOARD_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, time.Duration(0), cfg.API.Timeout)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "clubboard.db", cfg.Cache.Path)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "clubboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.example.org
  timeout: 15s
identity:
  name: Asha
  role: President
  team: Intellexa
log:
  level: debug
`), 0o644))

	t.Setenv("CLUBBOARD_CONFIG_PATH", path)
	t.Setenv("CLUBBOARD_LOG_LEVEL", "warn")
	t.Setenv("CLUBBOARD_CACHE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.example.org", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, "Asha", cfg.Identity.Name)
	require.Equal(t, "Intellexa", cfg.Identity.Team)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Empty(t, cfg.Cache.Path)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CLUBBOARD_SERVER_PORT=9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CLUBBOARD_SERVER_PORT") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CLUBBOARD_SERVER_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
}
