package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/connman-gtk/common"
)

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
	assert.Equal(t, common.DuplicateReject, cfg.DuplicatePolicy)
	assert.Equal(t, path, cfg.Path())
	assert.True(t, common.FileExists(path))
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Theme = common.ThemeDark
	cfg.Bus = common.BusSession
	cfg.DuplicatePolicy = common.DuplicateReplace
	cfg.ShowTray = true
	cfg.WindowWidth = 1024
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, common.ThemeDark, loaded.Theme)
	assert.Equal(t, common.BusSession, loaded.Bus)
	assert.Equal(t, common.DuplicateReplace, loaded.DuplicatePolicy)
	assert.True(t, loaded.ShowTray)
	assert.Equal(t, 1024, loaded.WindowWidth)
	assert.Equal(t, common.DefaultWindowHeight, loaded.WindowHeight)
}

func TestLoadFrom_InvalidValuesFallBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "theme: neon\nbus: tcp\nduplicate_policy: merge\nwindow_width: 10\nwindow_height: 20\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Theme, cfg.Theme)
	assert.Equal(t, defaults.Bus, cfg.Bus)
	assert.Equal(t, defaults.DuplicatePolicy, cfg.DuplicatePolicy)
	assert.Equal(t, defaults.WindowWidth, cfg.WindowWidth)
	assert.Equal(t, defaults.WindowHeight, cfg.WindowHeight)
}

func TestLoadFrom_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_reconnect: true\n"), 0600))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigLoad))
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: light\n"), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, common.ThemeLight, cfg.Theme)
	assert.True(t, cfg.ShowNotifications)
	assert.Equal(t, common.BusSystem, cfg.Bus)
}
