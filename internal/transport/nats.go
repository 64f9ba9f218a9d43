package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/primes-services/primes-intent/internal/config"
	"github.com/primes-services/primes-intent/internal/logger"
	"github.com/primes-services/primes-intent/internal/models"
	"github.com/primes-services/primes-intent/internal/orchestrator"
)

// NATSTransport exposes the orchestrator over NATS request/reply.
type NATSTransport struct {
	conn   *nats.Conn
	config *config.Config
	orch   *orchestrator.Orchestrator
	logger logger.Logger
}

// NewNATSTransport connects to the NATS server.
func NewNATSTransport(cfg *config.Config, orch *orchestrator.Orchestrator, log logger.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSTransport{
		conn:   conn,
		config: cfg,
		orch:   orch,
		logger: log.With(map[string]interface{}{"component": "transport"}),
	}, nil
}

// Start subscribes to the chat, reset and history subjects.
func (nt *NATSTransport) Start() error {
	subjects := map[string]nats.MsgHandler{
		nt.config.NatsChatSubject:    nt.handleChat,
		nt.config.NatsResetSubject:   nt.handleReset,
		nt.config.NatsHistorySubject: nt.handleHistory,
	}

	for subject, handler := range subjects {
		if _, err := nt.conn.Subscribe(subject, handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		nt.logger.Info("subscribed", map[string]interface{}{"subject": subject})
	}

	return nil
}

func (nt *NATSTransport) handleChat(msg *nats.Msg) {
	var request models.ChatRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.logger.Warn("invalid chat request", map[string]interface{}{"error": err.Error()})
		nt.respond(msg, models.ChatResponse{
			Success:   false,
			ErrorCode: models.ErrorParseError,
			Error:     "Invalid request format",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	nt.respond(msg, nt.orch.ProcessMessage(ctx, request))
}

// sessionRequest targets one session for reset or history reads.
type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (nt *NATSTransport) handleReset(msg *nats.Msg) {
	var request sessionRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil || request.SessionID == "" {
		nt.respond(msg, models.ChatResponse{
			Success:   false,
			ErrorCode: models.ErrorParseError,
			Error:     "Invalid request format",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	if err := nt.orch.Reset(ctx, request.SessionID); err != nil {
		nt.logger.Error("reset failed", map[string]interface{}{
			"sessionId": request.SessionID,
			"error":     err.Error(),
		})
		nt.respond(msg, models.ChatResponse{
			Success:        false,
			ConversationID: request.SessionID,
			ErrorCode:      models.ErrorStoreFailed,
			Error:          "Reset failed",
		})
		return
	}

	nt.respond(msg, models.ChatResponse{Success: true, ConversationID: request.SessionID})
}

func (nt *NATSTransport) handleHistory(msg *nats.Msg) {
	var request sessionRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil || request.SessionID == "" {
		nt.respond(msg, map[string]interface{}{"success": false, "error": "Invalid request format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	history, err := nt.orch.History(ctx, request.SessionID)
	if err != nil {
		nt.respond(msg, map[string]interface{}{"success": false, "error": "History unavailable"})
		return
	}

	nt.respond(msg, map[string]interface{}{
		"success":    true,
		"session_id": request.SessionID,
		"messages":   history,
	})
}

func (nt *NATSTransport) respond(msg *nats.Msg, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		nt.logger.Error("failed to marshal response", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.logger.Error("failed to send response", map[string]interface{}{"error": err.Error()})
	}
}

// Close drains the NATS connection.
func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		nt.conn.Close()
	}
	return nil
}
