package models

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn represents a single message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. The caller supplies
// the full history on every request.
type ChatRequest struct {
	Message string     `json:"message"`
	APIKey  string     `json:"apiKey"`
	History []ChatTurn `json:"chatHistory"`
}

// ChatData is the reply from the AI chat.
type ChatData struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

type KeyTestRequest struct {
	APIKey string `json:"apiKey"`
}

// AssistRequest is answered with the server-configured key, or canned text
// when none is usable.
type AssistRequest struct {
	Message string `json:"message"`
}

type AssistData struct {
	Response  string `json:"response"`
	Fallback  bool   `json:"fallback"`
	Timestamp string `json:"timestamp"`
}
