package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/config"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644))
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	return config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TODOIST_API_TOKEN", "")
	t.Setenv("STITCH_VAULT", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
}

func TestLoader_Load(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	writeConfig(t, dir, `
vault: /data/vault
note: Tasks.md
state: /data/state/snapshot.json
todoist:
  token: file-token
triage:
  provider: anthropic
  model: claude-sonnet-4-5
  apiKey: file-key
  maxTokens: 2048
`)

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/data/vault", cfg.VaultPath)
	assert.Equal(t, "Tasks.md", cfg.NoteFile)
	assert.Equal(t, "/data/state/snapshot.json", cfg.StatePath)
	assert.Equal(t, "file-token", cfg.RemoteToken)
	assert.Equal(t, "anthropic", cfg.Triage.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Triage.Model)
	assert.Equal(t, "file-key", cfg.Triage.APIKey)
	assert.Equal(t, 2048, cfg.Triage.MaxTokens)
}

func TestLoader_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TODOIST_API_TOKEN", "env-token")

	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	// The vault defaults to the config file's directory, the note to a
	// well-known file inside it.
	assert.Equal(t, dir, cfg.VaultPath)
	assert.Equal(t, "Open Tasks.md", cfg.NoteFile)
	assert.Equal(t, filepath.Join(dir, "Open Tasks.md"), cfg.NotePath())
	assert.Equal(t, filepath.Join(dir, ".stitch", "snapshot.json"), cfg.SnapshotPath())
}

func TestLoader_WalkUp(t *testing.T) {
	clearEnv(t)

	root := t.TempDir()
	writeConfig(t, root, "todoist:\n  token: file-token\n")

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := newLoader(t).Load(nested)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.RemoteToken)
	assert.Equal(t, root, cfg.VaultPath)
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Run("token and vault", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TODOIST_API_TOKEN", "env-token")
		t.Setenv("STITCH_VAULT", "/env/vault")

		dir := t.TempDir()
		writeConfig(t, dir, "vault: /file/vault\ntodoist:\n  token: file-token\n")

		cfg, err := newLoader(t).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "env-token", cfg.RemoteToken)
		assert.Equal(t, "/env/vault", cfg.VaultPath)
	})

	t.Run("api key follows provider", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TODOIST_API_TOKEN", "env-token")
		t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
		t.Setenv("OPENAI_API_KEY", "openai-key")

		dir := t.TempDir()
		writeConfig(t, dir, "triage:\n  provider: anthropic\n")

		cfg, err := newLoader(t).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "anthropic-key", cfg.Triage.APIKey)
	})

	t.Run("file api key is not overridden", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TODOIST_API_TOKEN", "env-token")
		t.Setenv("OPENAI_API_KEY", "env-key")

		dir := t.TempDir()
		writeConfig(t, dir, "triage:\n  apiKey: file-key\n")

		cfg, err := newLoader(t).Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.Triage.APIKey)
	})
}

func TestLoader_Errors(t *testing.T) {
	t.Run("no config file anywhere", func(t *testing.T) {
		clearEnv(t)
		_, err := newLoader(t).Load(t.TempDir())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "vault: [unterminated")

		_, err := newLoader(t).Load(dir)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
	})

	t.Run("missing token", func(t *testing.T) {
		clearEnv(t)
		dir := t.TempDir()
		writeConfig(t, dir, "vault: /data/vault\n")

		_, err := newLoader(t).Load(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingToken)
	})
}
