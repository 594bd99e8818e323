package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

type ITranscriptUsecase interface {
	// GetTranscript returns the transcript for the video, serving from cache
	// when possible. Upstream failures collapse into
	// model.ErrCaptionsUnavailable regardless of which source failed.
	GetTranscript(ctx context.Context, videoID string) (string, error)
}

type transcriptUsecase struct {
	cache   repository.IStudyCache
	sources []repository.ICaptionSource
}

func NewTranscriptUsecase(cache repository.IStudyCache, sources []repository.ICaptionSource) ITranscriptUsecase {
	return &transcriptUsecase{cache: cache, sources: sources}
}

func (u *transcriptUsecase) GetTranscript(ctx context.Context, videoID string) (string, error) {
	if raw, err := u.cache.Get(ctx, repository.CacheTranscript, videoID); err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Warn("transcript cache read failed")
	} else if raw != nil {
		var cached string
		if err := json.Unmarshal(raw, &cached); err == nil && cached != "" {
			return cached, nil
		}
	}

	transcript, err := u.fetch(ctx, videoID)
	if err != nil {
		return "", err
	}

	if err := u.cache.Set(ctx, repository.CacheTranscript, videoID, transcript); err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Warn("transcript cache write failed")
	}
	return transcript, nil
}

// fetch walks the source chain in priority order. A source that errors or
// returns empty text yields to the next one.
func (u *transcriptUsecase) fetch(ctx context.Context, videoID string) (string, error) {
	for _, source := range u.sources {
		text, err := source.Fetch(ctx, videoID)
		if err != nil {
			logger.GetLogger().WithField("videoId", videoID).
				WithField("source", source.Name()).WithField("error", err).
				Warn("caption source failed")
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			logger.GetLogger().WithField("videoId", videoID).
				WithField("source", source.Name()).Warn("caption source returned empty transcript")
			continue
		}
		return text, nil
	}
	return "", model.ErrCaptionsUnavailable
}
