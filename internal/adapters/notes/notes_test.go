package notes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/notes"
)

func TestStore_Read(t *testing.T) {
	t.Parallel()
	store := notes.New()

	t.Run("missing note yields empty text", func(t *testing.T) {
		t.Parallel()
		text, err := store.Read(filepath.Join(t.TempDir(), "missing.md"))
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("returns file content verbatim", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "Open Tasks.md")
		want := "## Open Tasks\n\n- [ ] Buy milk %%id:T1%%\n"
		require.NoError(t, os.WriteFile(path, []byte(want), 0o644))

		text, err := store.Read(path)
		require.NoError(t, err)
		assert.Equal(t, want, text)
	})

	t.Run("unreadable note errors with path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		// A directory at the note path is unreadable as a file.
		_, err := store.Read(dir)
		require.Error(t, err)
	})
}

func TestStore_Write(t *testing.T) {
	t.Parallel()
	store := notes.New()

	t.Run("creates vault directory and file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "vault", "Open Tasks.md")
		require.NoError(t, store.Write(path, "- [ ] Buy milk\n"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "- [ ] Buy milk\n", string(data))
	})

	t.Run("truncates previous content", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "Open Tasks.md")
		require.NoError(t, store.Write(path, "a much longer first version\n"))
		require.NoError(t, store.Write(path, "short\n"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "short\n", string(data))
	})
}
