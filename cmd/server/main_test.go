package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/clubboard/internal/testserver"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsConfigErrorsInsteadOfExiting(t *testing.T) {
	api := testserver.New(t, testserver.State{})
	t.Chdir(t.TempDir())
	logPath := filepath.Join(t.TempDir(), "server.log")
	t.Setenv("CLUBBOARD_CONFIG_PATH", "")
	t.Setenv("CLUBBOARD_API_BASE_URL", api.URL())
	t.Setenv("CLUBBOARD_TRANSPORT_MODE", "http")
	t.Setenv("CLUBBOARD_CACHE_PATH", "")
	t.Setenv("CLUBBOARD_NATS_URL", "")
	t.Setenv("CLUBBOARD_METRICS_ENABLED", "false")
	t.Setenv("CLUBBOARD_AUTH_ENABLED", "true")
	t.Setenv("CLUBBOARD_AUTH_TOKEN", "")
	t.Setenv("CLUBBOARD_LOG_PATH", logPath)

	err := run()
	require.ErrorContains(t, err, "CLUBBOARD_AUTH_TOKEN")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "bootstrap")
}
