package dto

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries either a single message or a conversation history.
type ChatRequest struct {
	Message   string        `json:"message,omitempty"`
	Messages  []ChatMessage `json:"messages,omitempty"`
	SessionID string        `json:"sessionId,omitempty"`
}

type ChatAction struct {
	Type   string                 `json:"type"`
	Params map[string]interface{} `json:"params,omitempty"`
}

type ChatReply struct {
	Reply   string       `json:"reply"`
	Actions []ChatAction `json:"actions"`
}
