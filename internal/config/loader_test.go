package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/shelflog/internal/kv"
)

func newTestLoader(t *testing.T) (*Loader, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLoader(logger)
	l.userPath = filepath.Join(t.TempDir(), UserConfigFile)
	return l, &logs
}

func TestLoader_DefaultsWhenNoFiles(t *testing.T) {
	l, _ := newTestLoader(t)

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_Layering(t *testing.T) {
	l, logs := newTestLoader(t)
	require.NoError(t, os.WriteFile(l.userPath, []byte("storage:\n  key: user\ndisplay:\n  sort: name\n"), 0644))

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("display:\n  sort: rating\n"), 0644))

	cfg, err := l.Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "user", cfg.Storage.Key)
	assert.Equal(t, "rating", cfg.Display.Sort)
	assert.Contains(t, logs.String(), "loaded user config")
}

func TestLoader_BrokenUserConfigWarns(t *testing.T) {
	l, logs := newTestLoader(t)
	require.NoError(t, os.WriteFile(l.userPath, []byte("storage: [oops"), 0644))

	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Contains(t, logs.String(), "failed to load user config")
}

func TestLoader_MissingExplicitConfigFails(t *testing.T) {
	l, _ := newTestLoader(t)

	_, err := l.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoader_InvalidResultFails(t *testing.T) {
	l, _ := newTestLoader(t)
	require.NoError(t, os.WriteFile(l.userPath, []byte("storage:\n  backend: redis\n"), 0644))

	_, err := l.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestLoader_EnsureUserConfig(t *testing.T) {
	l, _ := newTestLoader(t)
	l.userPath = filepath.Join(t.TempDir(), "sub", UserConfigFile)

	path, err := l.EnsureUserConfig()
	require.NoError(t, err)
	assert.Equal(t, l.userPath, path)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, kv.BackendSQLite, cfg.Storage.Backend)

	// Existing file is left alone.
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  key: mine\n"), 0644))
	_, err = l.EnsureUserConfig()
	require.NoError(t, err)
	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", cfg.Storage.Key)
}
