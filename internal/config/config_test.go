package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// t.Setenv registers the restore; Unsetenv makes the default apply.
	t.Setenv("PLACENET_API_URL", "")
	os.Unsetenv("PLACENET_API_URL") //nolint:errcheck
	t.Setenv("PLACENET_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Empty(t, cfg.SocketURL)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLACENET_API_URL", "https://placement.campus.edu")
	t.Setenv("PLACENET_SOCKET_URL", "wss://placement.campus.edu/socket")
	t.Setenv("PLACENET_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://placement.campus.edu", cfg.APIURL)
	assert.Equal(t, "wss://placement.campus.edu/socket", cfg.SocketURL)
	assert.Equal(t, filepath.Join(dir, "identity.json"), cfg.IdentityCachePath())
	assert.Equal(t, filepath.Join(dir, "cookies.json"), cfg.CookiePath())
}
