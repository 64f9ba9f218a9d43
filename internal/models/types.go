package models

// ChatRequest is the message-processing request received from the backend.
type ChatRequest struct {
	SessionID  string                 `json:"session_id"`
	Message    string                 `json:"message"`
	UserType   string                 `json:"user_type,omitempty"`
	UserRegion string                 `json:"user_region,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Action is a concrete follow-up proposed alongside an assistant reply.
type Action struct {
	Type    string `json:"type"` // "form", "redirect", "internal", "contact"
	Label   string `json:"label"`
	URL     string `json:"url"`
	Primary bool   `json:"primary"`
}

// ResponseMetadata describes how a reply was produced.
type ResponseMetadata struct {
	IntentCategory string  `json:"intent_category"`
	QuestionType   string  `json:"question_type"`
	Confidence     float64 `json:"confidence"`
	ResponseType   string  `json:"response_type"` // "calculation", "procedure", "information", "general"
	Timestamp      string  `json:"timestamp"`
	Model          string  `json:"model"`
}

// ChatResponse is the reply sent back to the backend.
type ChatResponse struct {
	Success        bool              `json:"success"`
	ConversationID string            `json:"conversation_id"`
	Content        string            `json:"content,omitempty"`
	Actions        []Action          `json:"actions,omitempty"`
	Suggestions    []string          `json:"suggestions,omitempty"`
	Metadata       *ResponseMetadata `json:"metadata,omitempty"`
	ErrorCode      string            `json:"error_code,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// Error codes surfaced to the backend.
const (
	ErrorEmptyMessage = "EMPTY_MESSAGE"
	ErrorParseError   = "PARSE_ERROR"
	ErrorLLMTimeout   = "LLM_API_TIMEOUT"
	ErrorLLMFailed    = "LLM_API_FAILED"
	ErrorStoreFailed  = "STORE_FAILED"
)
