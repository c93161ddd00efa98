// Package llm implements the Triager port over language-model provider SDKs.
package llm

import (
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// defaultMaxTokens caps the completion when the config does not.
	defaultMaxTokens = 1024

	// ProviderOpenAI selects the OpenAI chat-completions backend.
	ProviderOpenAI = "openai"
	// ProviderAnthropic selects the Anthropic messages backend.
	ProviderAnthropic = "anthropic"
)

// New creates a Triager for the configured provider.
func New(cfg domain.TriageConfig) (ports.Triager, error) {
	if cfg.APIKey == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingAPIKey, ""), "provider", cfg.Provider)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAI(cfg.APIKey, cfg.Model, maxTokens), nil
	case ProviderAnthropic:
		return newAnthropic(cfg.APIKey, cfg.Model, maxTokens), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", cfg.Provider)
	}
}
