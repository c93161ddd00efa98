package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultAnthropicModel is used when the config does not name a model.
const defaultAnthropicModel = "claude-sonnet-4-5"

var _ ports.Triager = (*anthropicTriager)(nil)

// anthropicTriager implements ports.Triager using the official Anthropic SDK.
type anthropicTriager struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func newAnthropic(apiKey, model string, maxTokens int) *anthropicTriager {
	if model == "" {
		model = defaultAnthropicModel
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &anthropicTriager{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends the prompt as a single user message and concatenates the
// text blocks of the response.
func (t *anthropicTriager) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := t.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(t.model),
		MaxTokens: int64(t.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrTriageFailed.Error())
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrEmptyCompletion, ""), "model", t.model)
	}
	return text, nil
}
