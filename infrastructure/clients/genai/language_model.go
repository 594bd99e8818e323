package genai

import (
	"context"
	"encoding/json"
	"sync"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// LanguageModel adapts the model runtime to the generative prompting
// capability. Prompt reuses one lazily-created session; chat sessions are
// independent of it and own their message history, since the runtime itself
// is stateless between requests.
type LanguageModel struct {
	cfg Config

	mu      sync.Mutex
	session *Client
}

func NewLanguageModel(cfg Config) *LanguageModel {
	return &LanguageModel{cfg: cfg}
}

func (m *LanguageModel) Availability(ctx context.Context) (repository.Availability, error) {
	return NewClient(m.cfg).Availability(ctx)
}

func (m *LanguageModel) Prompt(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	return m.getSession().Chat(ctx, []model.ChatMessage{{Role: model.RoleUser, Content: prompt}}, schema)
}

func (m *LanguageModel) Reset() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
}

func (m *LanguageModel) getSession() *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		logger.GetLogger().Info("Creating new language model session")
		m.session = NewClient(m.cfg)
	}
	return m.session
}

func (m *LanguageModel) NewChat(_ context.Context, initial []model.ChatMessage) (repository.IChatSession, error) {
	messages := make([]model.ChatMessage, len(initial))
	copy(messages, initial)
	return &chatSession{client: NewClient(m.cfg), messages: messages}, nil
}

// chatSession is one live conversation. The session accumulates turns and
// replays them to the runtime on every prompt.
type chatSession struct {
	client   *Client
	messages []model.ChatMessage
}

func (s *chatSession) PromptStreaming(ctx context.Context, userPrompt string, onChunk func(string)) error {
	s.messages = append(s.messages, model.ChatMessage{Role: model.RoleUser, Content: userPrompt})

	reply, err := s.client.ChatStream(ctx, s.messages, onChunk)
	if err != nil {
		// Drop the failed turn so a retry does not duplicate it.
		s.messages = s.messages[:len(s.messages)-1]
		return err
	}
	s.messages = append(s.messages, model.ChatMessage{Role: model.RoleAssistant, Content: reply})
	return nil
}

func (s *chatSession) Destroy() {
	s.messages = nil
}
