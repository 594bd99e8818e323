package genai

import (
	"context"
	"sync"

	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// Summarizer adapts the model runtime to the summarization capability. The
// underlying client is created lazily on first use and reused across calls;
// Reset discards it so the next call starts from a fresh handle.
type Summarizer struct {
	cfg Config

	mu       sync.Mutex
	instance *Client
}

func NewSummarizer(cfg Config) *Summarizer {
	return &Summarizer{cfg: cfg}
}

func (s *Summarizer) Availability(ctx context.Context) (repository.Availability, error) {
	return NewClient(s.cfg).Availability(ctx)
}

func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	return s.getInstance().Generate(ctx, instruction, text)
}

func (s *Summarizer) Reset() {
	s.mu.Lock()
	s.instance = nil
	s.mu.Unlock()
}

func (s *Summarizer) getInstance() *Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.instance == nil {
		logger.GetLogger().Info("Creating new summarizer instance")
		s.instance = NewClient(s.cfg)
	}
	return s.instance
}
