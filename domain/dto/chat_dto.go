package dto

import "tubetutor/domain/model"

// ChatPromptRequest starts or continues the chat for a video. The last
// history entry is the new user prompt; earlier entries seed the session the
// first time it is created.
type ChatPromptRequest struct {
	Transcript string              `json:"transcript"`
	History    []model.ChatMessage `json:"history" binding:"required"`
}

// Chat stream event types. A stream is zero or more chunks followed by
// exactly one terminal event.
const (
	ChatEventChunk    = "chat_chunk"
	ChatEventComplete = "chat_complete"
	ChatEventError    = "chat_error"
)

// ChatEvent is one streamed chat reply fragment or terminal signal.
type ChatEvent struct {
	Type    string `json:"type"`
	VideoID string `json:"videoId"`
	Chunk   string `json:"chunk,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (e ChatEvent) Terminal() bool {
	return e.Type == ChatEventComplete || e.Type == ChatEventError
}
