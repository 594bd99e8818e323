package model

// ChatMessage is one turn in a chat conversation. Role is "system", "user"
// or "assistant", mirroring the conversational model's wire format.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
