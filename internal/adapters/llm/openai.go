package llm

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

// defaultOpenAIModel is used when the config does not name a model.
const defaultOpenAIModel = "gpt-4o"

var _ ports.Triager = (*openAITriager)(nil)

// openAITriager implements ports.Triager using the official OpenAI SDK.
type openAITriager struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func newOpenAI(apiKey, model string, maxTokens int) *openAITriager {
	if model == "" {
		model = defaultOpenAIModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openAITriager{
		client:    &client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends the prompt as a single user message and returns the text
// of the first choice.
func (t *openAITriager) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(t.maxTokens)),
	})
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrTriageFailed.Error())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrEmptyCompletion, ""), "model", t.model)
	}
	return resp.Choices[0].Message.Content, nil
}
