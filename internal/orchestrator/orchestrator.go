package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/primes-services/primes-intent/internal/assembler"
	"github.com/primes-services/primes-intent/internal/conversation"
	"github.com/primes-services/primes-intent/internal/enhancer"
	"github.com/primes-services/primes-intent/internal/llm"
	"github.com/primes-services/primes-intent/internal/logger"
	"github.com/primes-services/primes-intent/internal/metrics"
	"github.com/primes-services/primes-intent/internal/models"
	"github.com/primes-services/primes-intent/internal/nlp"
)

// User-safe messages; technical detail stays in the logs.
const (
	emptyMessageError = "Message vide"
	providerApology   = "Je suis désolé, je rencontre une difficulté technique. Pouvez-vous reformuler votre question ?"
	storeApology      = "Je suis désolé, je rencontre une difficulté. Un expert peut vous aider : equipe@primes-services.be"
)

// Orchestrator sequences the full message pipeline: extraction and
// classification, context assembly, the external completion call,
// enhancement and conversation persistence. It is the only component that
// touches all of the others.
type Orchestrator struct {
	store     *conversation.Store
	analyzer  *nlp.Analyzer
	assembler *assembler.Assembler
	enhancer  *enhancer.Enhancer
	provider  llm.CompletionProvider
	params    llm.Params
	logger    logger.Logger
}

// New wires the pipeline together.
func New(
	store *conversation.Store,
	analyzer *nlp.Analyzer,
	asm *assembler.Assembler,
	enh *enhancer.Enhancer,
	provider llm.CompletionProvider,
	params llm.Params,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		store:     store,
		analyzer:  analyzer,
		assembler: asm,
		enhancer:  enh,
		provider:  provider,
		params:    params,
		logger:    log.With(map[string]interface{}{"component": "orchestrator"}),
	}
}

// ProcessMessage runs one conversational turn. The assistant reply is
// appended to the conversation only after the provider call succeeds; on
// provider or store failure the caller gets a user-safe message and the
// conversation stays consistent.
func (o *Orchestrator) ProcessMessage(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	start := time.Now()

	// Blank input is a validation error, not a system fault.
	if strings.TrimSpace(req.Message) == "" {
		return models.ChatResponse{
			Success:        false,
			ConversationID: req.SessionID,
			ErrorCode:      models.ErrorEmptyMessage,
			Error:          emptyMessageError,
			Suggestions:    []string{nlp.DefaultSuggestion},
		}
	}

	state, err := o.store.GetOrCreate(ctx, req.SessionID, req.UserType, req.UserRegion)
	if err != nil {
		return o.storeFailure(req.SessionID, "get or create conversation", err, start)
	}

	// Profile and history come from the state before this turn; the current
	// message travels separately in the provider call.
	analysis := o.analyzer.Analyze(req.Message, state.Profile())
	payload := o.assembler.Assemble(state, analysis)

	if err := o.store.AppendMessage(ctx, state.SessionID, conversation.RoleUser, req.Message, req.Metadata); err != nil {
		return o.storeFailure(state.SessionID, "append user message", err, start)
	}

	content, err := o.provider.Complete(ctx, payload.SystemPrompt, payload.History, req.Message, o.params)
	if err != nil {
		return o.providerFailure(state.SessionID, err, start)
	}

	enhanced := o.enhancer.Enhance(content, analysis.Intent, payload.RegionalFacts, state.UserType, state.UserRegion)

	metadata := &models.ResponseMetadata{
		IntentCategory: string(analysis.Intent.Category),
		QuestionType:   string(analysis.Intent.QuestionType),
		Confidence:     analysis.Confidence,
		ResponseType:   enhanced.ResponseType,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Model:          o.params.Model,
	}

	// Append only the confirmed reply; a failed provider call never leaves a
	// partial assistant message behind.
	assistantMeta := map[string]interface{}{
		"intent_category": string(analysis.Intent.Category),
		"question_type":   string(analysis.Intent.QuestionType),
		"confidence":      analysis.Confidence,
		"response_type":   enhanced.ResponseType,
	}
	if err := o.store.AppendMessage(ctx, state.SessionID, conversation.RoleAssistant, enhanced.Content, assistantMeta); err != nil {
		return o.storeFailure(state.SessionID, "append assistant message", err, start)
	}

	metrics.MessagesProcessed.WithLabelValues(string(analysis.Intent.Category)).Inc()
	metrics.PipelineDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	o.logger.Info("message processed", map[string]interface{}{
		"sessionId":    state.SessionID,
		"intent":       analysis.Intent.Category,
		"questionType": analysis.Intent.QuestionType,
		"confidence":   analysis.Confidence,
		"durationMs":   time.Since(start).Milliseconds(),
	})

	return models.ChatResponse{
		Success:        true,
		ConversationID: state.SessionID,
		Content:        enhanced.Content,
		Actions:        enhanced.Actions,
		Suggestions:    analysis.Suggestions,
		Metadata:       metadata,
	}
}

// Reset clears the conversation log and reactivates the session.
func (o *Orchestrator) Reset(ctx context.Context, sessionID string) error {
	return o.store.Reset(ctx, sessionID)
}

// Complete marks the conversation finished.
func (o *Orchestrator) Complete(ctx context.Context, sessionID string) error {
	return o.store.Complete(ctx, sessionID)
}

// History returns the conversation's message log.
func (o *Orchestrator) History(ctx context.Context, sessionID string) ([]conversation.Message, error) {
	return o.store.History(ctx, sessionID)
}

// Stats summarizes the conversation.
func (o *Orchestrator) Stats(ctx context.Context, sessionID string) (conversation.Stats, error) {
	return o.store.Stats(ctx, sessionID)
}

func (o *Orchestrator) providerFailure(sessionID string, err error, start time.Time) models.ChatResponse {
	code := models.ErrorLLMFailed
	if errors.Is(err, llm.ErrProviderTimeout) {
		code = models.ErrorLLMTimeout
	}

	metrics.ProviderFailures.WithLabelValues(code).Inc()
	metrics.MessagesFailed.WithLabelValues(code).Inc()
	metrics.PipelineDuration.WithLabelValues("provider_error").Observe(time.Since(start).Seconds())

	o.logger.Error("completion provider failed", map[string]interface{}{
		"sessionId": sessionID,
		"errorCode": code,
		"error":     err.Error(),
	})

	return models.ChatResponse{
		Success:        false,
		ConversationID: sessionID,
		ErrorCode:      code,
		Error:          providerApology,
	}
}

func (o *Orchestrator) storeFailure(sessionID, operation string, err error, start time.Time) models.ChatResponse {
	metrics.MessagesFailed.WithLabelValues(models.ErrorStoreFailed).Inc()
	metrics.PipelineDuration.WithLabelValues("store_error").Observe(time.Since(start).Seconds())

	o.logger.Error("conversation store failed", map[string]interface{}{
		"sessionId": sessionID,
		"operation": operation,
		"error":     err.Error(),
	})

	return models.ChatResponse{
		Success:        false,
		ConversationID: sessionID,
		ErrorCode:      models.ErrorStoreFailed,
		Error:          storeApology,
	}
}
