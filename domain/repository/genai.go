package repository

import (
	"context"
	"encoding/json"

	"tubetutor/domain/model"
)

// Availability mirrors the on-device model readiness states reported by the
// capability surface.
type Availability string

const (
	AvailabilityAvailable    Availability = "available"
	AvailabilityDownloadable Availability = "downloadable"
	AvailabilityDownloading  Availability = "downloading"
	AvailabilityUnavailable  Availability = "unavailable"
)

// ISummarizer is the summarization capability. Implementations create their
// underlying model handle lazily on first Summarize and reuse it across
// calls; Reset discards the handle so the next call recreates it.
type ISummarizer interface {
	Availability(ctx context.Context) (Availability, error)
	Summarize(ctx context.Context, text, instruction string) (string, error)
	Reset()
}

// ILanguageModel is the generative prompting capability. Prompt runs one
// constrained exchange against a retained session (created lazily, reused
// across calls, discarded by Reset). NewChat creates an independent
// conversational session that is not shared with Prompt.
type ILanguageModel interface {
	Availability(ctx context.Context) (Availability, error)
	// Prompt sends one prompt constrained by the given JSON schema and
	// returns the raw model output.
	Prompt(ctx context.Context, prompt string, schema json.RawMessage) (string, error)
	Reset()
	NewChat(ctx context.Context, initial []model.ChatMessage) (IChatSession, error)
}

// IChatSession is one live conversational session. The session owns its
// message history; PromptStreaming appends the user turn, streams the reply
// through onChunk and records the assistant turn.
type IChatSession interface {
	PromptStreaming(ctx context.Context, userPrompt string, onChunk func(string)) error
	Destroy()
}
