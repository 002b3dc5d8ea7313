package director

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAITransport is the one external call in the whole system mapped onto
// a real SDK instead of a hand-rolled HTTP client: the Director LLM speaks
// OpenAI-compatible chat.completions, and response_format={type:"json_object"}
// is a typed field the SDK exposes directly rather than a raw JSON map.
// Configured with a custom BaseURL so it can point at any OpenAI-compatible
// endpoint, not just api.openai.com.
type openAITransport struct {
	client openai.Client
	model  string
}

// newOpenAITransport builds a transport against baseURL (empty keeps the
// SDK's default api.openai.com) using model for every completion.
func newOpenAITransport(baseURL, apiKey, model string) *openAITransport {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAITransport{client: openai.NewClient(opts...), model: model}
}

// NewOpenAIAdapter builds a production Adapter backed by the real
// openai-go/v3 SDK transport, for internal/runtime to wire up without
// reaching into this package's unexported transport type.
func NewOpenAIAdapter(baseURL, apiKey, model string, metrics *AdapterMetrics) *Adapter {
	return NewAdapter(newOpenAITransport(baseURL, apiKey, model), metrics)
}

func (t *openAITransport) complete(ctx context.Context, systemPrompt, userPrompt string) (string, int, int, error) {
	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: t.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(800),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", 0, 0, err
	}
	if len(resp.Choices) == 0 {
		return "", 0, 0, errors.New("director: empty choices in Director LLM response")
	}

	return resp.Choices[0].Message.Content, int(resp.Usage.PromptTokens), int(resp.Usage.CompletionTokens), nil
}
