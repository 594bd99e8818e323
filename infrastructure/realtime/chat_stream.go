package realtime

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"tubetutor/domain/dto"
)

// ChatStream writes chat events for one request as a server-sent event
// stream. Unlike a broadcast hub there is exactly one subscriber: the caller
// that started the conversation turn.
type ChatStream struct {
	c *gin.Context
}

// NewChatStream prepares the response for event streaming and sends an
// initial comment so proxies open the connection immediately.
func NewChatStream(c *gin.Context) *ChatStream {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // disable nginx buffering

	c.Writer.Write([]byte(":ok\n\n"))
	c.Writer.Flush()
	return &ChatStream{c: c}
}

// Send writes one event frame and flushes it to the client.
func (s *ChatStream) Send(evt dto.ChatEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	_, _ = s.c.Writer.Write([]byte("event: " + evt.Type + "\n"))
	_, _ = s.c.Writer.Write([]byte("data: "))
	_, _ = s.c.Writer.Write(data)
	_, _ = s.c.Writer.Write([]byte("\n\n"))
	s.c.Writer.Flush()
}
