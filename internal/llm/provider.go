package llm

import (
	"context"
	"errors"
)

// Provider error sentinels, matched at the orchestrator boundary.
var (
	ErrProviderTimeout = errors.New("completion provider timeout")
	ErrProviderFailed  = errors.New("completion provider failed")
)

// HistoryMessage is one prior turn handed to the provider.
type HistoryMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Params tunes one completion call.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// CompletionProvider is the external conversational model, consumed as a
// black-box text completion. The call is a single atomic effect: either a
// full reply comes back or an error does.
type CompletionProvider interface {
	Complete(ctx context.Context, systemPrompt string, history []HistoryMessage, userMessage string, params Params) (string, error)
}
