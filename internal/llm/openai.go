package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIProvider implements CompletionProvider over the OpenAI chat API.
type OpenAIProvider struct {
	model   *openai.LLM
	timeout time.Duration
}

// NewOpenAIProvider builds the provider for the given credentials. The
// timeout bounds every completion call.
func NewOpenAIProvider(apiKey, model string, timeout time.Duration) (*OpenAIProvider, error) {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{model: client, timeout: timeout}, nil
}

// Complete sends the system prompt, prior turns and the current message and
// returns the model's reply text.
func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt string, history []HistoryMessage, userMessage string, params Params) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	for _, turn := range history {
		role := llms.ChatMessageTypeHuman
		if turn.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userMessage))

	opts := []llms.CallOption{
		llms.WithMaxTokens(params.MaxTokens),
		llms.WithTemperature(params.Temperature),
	}
	if params.Model != "" {
		opts = append(opts, llms.WithModel(params.Model))
	}

	resp, err := p.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrProviderFailed)
	}

	return resp.Choices[0].Content, nil
}
