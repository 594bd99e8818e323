package repository

import (
	"context"

	"tubetutor/domain/model"
)

// IPlaylistDirectory resolves playlist metadata from the video platform.
// Optional collaborator: enrollment works without it, using whatever the
// content surface scraped from the page.
type IPlaylistDirectory interface {
	// GetPlaylist returns the playlist title, thumbnail and ordered videos.
	GetPlaylist(ctx context.Context, playlistID string) (*model.Course, error)
}
