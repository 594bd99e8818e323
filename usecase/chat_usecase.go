package usecase

import (
	"context"
	"fmt"
	"sync"

	"tubetutor/domain/dto"
	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// chatPersona frames every per-video conversation. The transcript is embedded
// in the system turn so the assistant answers from the video's content.
const chatPersona = "You are a helpful learning assistant for a video course. " +
	"Answer the student's questions using the video transcript below. " +
	"Be concise and accurate; if the transcript does not cover the question, say so.\n\n" +
	"Transcript:\n%s"

type IChatUsecase interface {
	// SendMessage runs one conversation turn for the video and emits zero or
	// more chunk events followed by exactly one terminal event. The session
	// is created on first use and kept until ClearSession.
	SendMessage(ctx context.Context, videoID string, req dto.ChatPromptRequest, emit func(dto.ChatEvent))
	// ClearSession destroys the video's session so the next message starts a
	// fresh conversation. Clearing an unknown video is a no-op.
	ClearSession(videoID string)
}

type chatUsecase struct {
	languageModel repository.ILanguageModel // nil when no model runtime is configured

	mu       sync.Mutex
	sessions map[string]*videoChat
}

// videoChat serializes turns for one video. The per-session mutex keeps
// concurrent prompts from interleaving their history updates.
type videoChat struct {
	mu      sync.Mutex
	session repository.IChatSession
}

func NewChatUsecase(languageModel repository.ILanguageModel) IChatUsecase {
	return &chatUsecase{
		languageModel: languageModel,
		sessions:      make(map[string]*videoChat),
	}
}

func (u *chatUsecase) SendMessage(ctx context.Context, videoID string, req dto.ChatPromptRequest, emit func(dto.ChatEvent)) {
	fail := func(err error) {
		emit(dto.ChatEvent{Type: dto.ChatEventError, VideoID: videoID, Error: err.Error()})
	}

	if u.languageModel == nil {
		fail(model.ErrCapabilityUnavailable)
		return
	}
	if len(req.History) == 0 {
		fail(fmt.Errorf("chat history is empty"))
		return
	}
	last := req.History[len(req.History)-1]
	if last.Role != model.RoleUser || last.Content == "" {
		fail(fmt.Errorf("last history entry must be a non-empty user message"))
		return
	}

	vc, err := u.getOrCreate(ctx, videoID, req)
	if err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Error("failed to create chat session")
		fail(err)
		return
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()

	err = vc.session.PromptStreaming(ctx, last.Content, func(chunk string) {
		emit(dto.ChatEvent{Type: dto.ChatEventChunk, VideoID: videoID, Chunk: chunk})
	})
	if err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Error("chat turn failed")
		fail(err)
		return
	}
	emit(dto.ChatEvent{Type: dto.ChatEventComplete, VideoID: videoID})
}

// getOrCreate returns the video's live session, seeding a new one from the
// persona prompt and the prior history when none exists yet.
func (u *chatUsecase) getOrCreate(ctx context.Context, videoID string, req dto.ChatPromptRequest) (*videoChat, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if vc, ok := u.sessions[videoID]; ok {
		return vc, nil
	}

	initial := make([]model.ChatMessage, 0, len(req.History))
	initial = append(initial, model.ChatMessage{
		Role:    model.RoleSystem,
		Content: fmt.Sprintf(chatPersona, req.Transcript),
	})
	// Prior turns seed the session; the last entry is the new prompt and is
	// sent through PromptStreaming instead.
	initial = append(initial, req.History[:len(req.History)-1]...)

	session, err := u.languageModel.NewChat(ctx, initial)
	if err != nil {
		return nil, err
	}
	vc := &videoChat{session: session}
	u.sessions[videoID] = vc
	logger.GetLogger().WithField("videoId", videoID).Info("created chat session")
	return vc, nil
}

func (u *chatUsecase) ClearSession(videoID string) {
	u.mu.Lock()
	vc, ok := u.sessions[videoID]
	if ok {
		delete(u.sessions, videoID)
	}
	u.mu.Unlock()
	if !ok {
		return
	}

	vc.mu.Lock()
	vc.session.Destroy()
	vc.mu.Unlock()
	logger.GetLogger().WithField("videoId", videoID).Info("cleared chat session")
}
