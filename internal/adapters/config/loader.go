// Package config provides the configuration loader for stitch.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file stitch looks for.
const FileName = "stitch.yaml"

// defaultNoteFile is used when the config names no note file.
const defaultNoteFile = "Open Tasks.md"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file with environment
// overrides for secrets.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds stitch.yaml by walking up from cwd, parses it, and applies
// environment overrides. The result is a fully resolved Config object; no
// component reads ambient process state after this point.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath) //nolint:gosec // Path found by directory walk
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := &domain.Config{
		VaultPath:   file.Vault,
		NoteFile:    file.Note,
		StatePath:   file.State,
		RemoteToken: file.Todoist.Token,
		Triage: domain.TriageConfig{
			Provider:  file.Triage.Provider,
			Model:     file.Triage.Model,
			APIKey:    file.Triage.APIKey,
			MaxTokens: file.Triage.MaxTokens,
		},
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg, filepath.Dir(configPath))

	if cfg.RemoteToken == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingToken, ""), "hint", "set TODOIST_API_TOKEN or todoist.token in "+FileName)
	}

	return cfg, nil
}

// findConfiguration walks up from cwd looking for stitch.yaml.
func findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "cwd", cwd)
}

// applyEnvOverrides lets environment variables take precedence for secrets
// and the vault path.
func applyEnvOverrides(cfg *domain.Config) {
	if v := os.Getenv("TODOIST_API_TOKEN"); v != "" {
		cfg.RemoteToken = v
	}
	if v := os.Getenv("STITCH_VAULT"); v != "" {
		cfg.VaultPath = v
	}

	if cfg.Triage.APIKey == "" {
		switch cfg.Triage.Provider {
		case "anthropic":
			cfg.Triage.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.Triage.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

// applyDefaults fills unset fields. The vault defaults to the directory the
// config file was found in.
func applyDefaults(cfg *domain.Config, configDir string) {
	if cfg.VaultPath == "" {
		cfg.VaultPath = configDir
	}
	if cfg.NoteFile == "" {
		cfg.NoteFile = defaultNoteFile
	}
}
