package domain

import "path/filepath"

// TriageConfig selects and configures the language-model triage provider.
type TriageConfig struct {
	// Provider is "openai" or "anthropic".
	Provider string
	Model    string
	APIKey   string
	// MaxTokens caps the completion length. Zero means the provider default.
	MaxTokens int
}

// Config carries all settings a run needs. It is passed explicitly into
// component entry points so the reconciler and codec stay free of ambient
// process state.
type Config struct {
	// VaultPath is the directory holding the note file.
	VaultPath string
	// NoteFile is the note filename inside the vault.
	NoteFile string
	// StatePath is the sync snapshot file. Defaults to
	// <vault>/.stitch/snapshot.json when empty.
	StatePath string
	// RemoteToken authenticates against the remote task service.
	RemoteToken string

	Triage TriageConfig
}

// NotePath returns the absolute path of the note file.
func (c *Config) NotePath() string {
	return filepath.Join(c.VaultPath, c.NoteFile)
}

// SnapshotPath returns the sync snapshot location, applying the default
// when none is configured.
func (c *Config) SnapshotPath() string {
	if c.StatePath != "" {
		return c.StatePath
	}
	return filepath.Join(c.VaultPath, ".stitch", "snapshot.json")
}
