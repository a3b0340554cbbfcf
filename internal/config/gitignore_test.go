package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrip/internal/config"
)

func TestEnsureGitignore_CreatesNewFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), ".ecotrip")

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))
	assert.Contains(t, string(data), "history.json")
	assert.Contains(t, string(data), "theme.json")
	assert.NotContains(t, string(data), "config.yaml\n")
}

func TestEnsureGitignore_DoesNotOverwriteExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0o600))

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom\n", string(data))
}

func TestGitignoreContent_CoversDataFiles(t *testing.T) {
	t.Parallel()

	var patterns []string
	for _, line := range strings.Split(config.GitignoreContent(), "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	ignored := func(name string) bool {
		for _, p := range patterns {
			if ok, _ := filepath.Match(p, name); ok {
				return true
			}
		}
		return false
	}

	cfg := config.New(t.TempDir())
	for _, name := range []string{
		filepath.Base(cfg.HistoryPath()),
		filepath.Base(cfg.HistoryPath()) + ".lock",
		filepath.Base(cfg.ThemePath()),
		filepath.Base(cfg.ThemePath()) + ".tmp",
		"history.db-wal",
		"history.db.corrupt",
		"ecotrip.log",
	} {
		assert.True(t, ignored(name), name)
	}
	assert.False(t, ignored("config.yaml"))
}

func TestEnsureGitignore_SecondCallKeepsFirstFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	require.True(t, created)

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))
}
