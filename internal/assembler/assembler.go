package assembler

import (
	"unicode/utf8"

	"github.com/primes-services/primes-intent/internal/conversation"
	"github.com/primes-services/primes-intent/internal/llm"
	"github.com/primes-services/primes-intent/internal/nlp"
	"github.com/primes-services/primes-intent/internal/prompts"
	"github.com/primes-services/primes-intent/internal/regions"
)

// Bounds on the payload handed to the completion provider. The payload size
// stays fixed regardless of how long the conversation has run.
const (
	// HistoryWindow is how many recent messages are forwarded.
	HistoryWindow = 6
	// ContentBudget caps each forwarded message, in runes.
	ContentBudget = 200
	// omissionMarker flags truncated content explicitly.
	omissionMarker = "..."
)

// Payload is the ephemeral, per-call context bundle sent to the external
// model. It is assembled fresh for every turn and never stored.
type Payload struct {
	SystemPrompt  string
	History       []llm.HistoryMessage
	Intent        nlp.IntentResult
	Entities      nlp.EntityBundle
	UserContext   nlp.ContextSignal
	RegionalFacts regions.Facts
}

// Assembler builds bounded context payloads.
type Assembler struct {
	facts         *regions.Provider
	assistantName string
	language      string
	defaultRegion string
}

// New creates an assembler over the regional facts provider.
func New(facts *regions.Provider, assistantName, language, defaultRegion string) *Assembler {
	return &Assembler{
		facts:         facts,
		assistantName: assistantName,
		language:      language,
		defaultRegion: defaultRegion,
	}
}

// regionKey resolves the region for a conversation, falling back to the
// configured default region when the conversation has none.
func (a *Assembler) regionKey(state *conversation.State) string {
	if state.UserRegion != "" {
		return state.UserRegion
	}
	return a.defaultRegion
}

// Assemble builds the payload for one turn: system instructions, the
// truncated recent history window, the analysis outputs and regional facts.
func (a *Assembler) Assemble(state *conversation.State, analysis nlp.Analysis) Payload {
	region := a.regionKey(state)
	facts := a.facts.Lookup(region)

	return Payload{
		SystemPrompt:  prompts.BuildSystemPrompt(a.assistantName, a.language, state.UserType, region, facts),
		History:       recentHistory(state.Messages),
		Intent:        analysis.Intent,
		Entities:      analysis.Entities,
		UserContext:   analysis.UserContext,
		RegionalFacts: facts,
	}
}

// recentHistory returns the last HistoryWindow messages with each content
// truncated to the fixed budget.
func recentHistory(messages []conversation.Message) []llm.HistoryMessage {
	start := 0
	if len(messages) > HistoryWindow {
		start = len(messages) - HistoryWindow
	}

	history := make([]llm.HistoryMessage, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		history = append(history, llm.HistoryMessage{
			Role:    string(msg.Role),
			Content: Truncate(msg.Content, ContentBudget),
		})
	}
	return history
}

// Truncate caps s at limit runes, replacing the tail with an explicit
// omission marker rather than dropping text silently.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	keep := limit - len(omissionMarker)
	if keep < 0 {
		keep = 0
	}

	runes := []rune(s)
	return string(runes[:keep]) + omissionMarker
}
