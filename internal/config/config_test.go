package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eurekahq/eureka/internal/config"
)

func TestSaveAndLoad(t *testing.T) {
	t.Setenv(config.EnvConfigDir, filepath.Join(t.TempDir(), "eureka"))

	require.False(t, config.Exists())

	cfg := &config.Config{
		RepoPath:   "/home/user/ideas",
		SSHKeyPath: "/home/user/.ssh/id_ed25519",
	}
	require.NoError(t, cfg.Save())
	require.True(t, config.Exists())

	loaded, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestClear(t *testing.T) {
	t.Setenv(config.EnvConfigDir, filepath.Join(t.TempDir(), "eureka"))

	// clearing a missing config is fine
	require.NoError(t, config.Clear())

	cfg := &config.Config{RepoPath: "/home/user/ideas"}
	require.NoError(t, cfg.Save())
	require.True(t, config.Exists())

	require.NoError(t, config.Clear())
	require.False(t, config.Exists())
}

func TestLoadMissing(t *testing.T) {
	t.Setenv(config.EnvConfigDir, filepath.Join(t.TempDir(), "eureka"))

	_, err := config.Load()
	require.Error(t, err)
}
