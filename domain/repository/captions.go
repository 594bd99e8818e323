package repository

import "context"

// ICaptionSource is one upstream strategy for obtaining a video transcript.
// Sources are tried in a fixed priority order; a source is consulted only
// when every source before it failed or produced empty text.
type ICaptionSource interface {
	Name() string
	Fetch(ctx context.Context, videoID string) (string, error)
}
