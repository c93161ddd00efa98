package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stitch/internal/adapters/llm"
	"go.trai.ch/stitch/internal/core/domain"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{StableID: "T1", Title: "Buy milk"},
		{StableID: "T2", Title: "Ship release", Due: "2026-09-01"},
		{StableID: "T3", Title: "Already done", Done: true},
	}

	t.Run("lists open tasks with due dates", func(t *testing.T) {
		t.Parallel()
		prompt := llm.BuildPrompt(tasks, "")

		assert.Contains(t, prompt, "- Buy milk\n")
		assert.Contains(t, prompt, "- Ship release (due 2026-09-01)\n")
		assert.NotContains(t, prompt, "Already done")
	})

	t.Run("custom instruction replaces the default", func(t *testing.T) {
		t.Parallel()
		prompt := llm.BuildPrompt(tasks, "Pick exactly one task.")

		assert.Contains(t, prompt, "Pick exactly one task.")
		assert.NotContains(t, prompt, "Prioritise")
	})

	t.Run("default instruction when none given", func(t *testing.T) {
		t.Parallel()
		prompt := llm.BuildPrompt(nil, "")
		assert.Contains(t, prompt, "focus on today")
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires an api key", func(t *testing.T) {
		t.Parallel()
		_, err := llm.New(domain.TriageConfig{Provider: llm.ProviderOpenAI})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
	})

	t.Run("defaults to openai", func(t *testing.T) {
		t.Parallel()
		triager, err := llm.New(domain.TriageConfig{APIKey: "key"})
		require.NoError(t, err)
		assert.NotNil(t, triager)
	})

	t.Run("anthropic provider", func(t *testing.T) {
		t.Parallel()
		triager, err := llm.New(domain.TriageConfig{Provider: llm.ProviderAnthropic, APIKey: "key"})
		require.NoError(t, err)
		assert.NotNil(t, triager)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		_, err := llm.New(domain.TriageConfig{Provider: "cohere", APIKey: "key"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownProvider)
	})
}
