package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// notesInstruction steers the summarizer toward study notes.
const notesInstruction = "Extract key points from this video transcript as concise notes."

type INotesUsecase interface {
	// GetNotes returns AI-generated notes for the video, serving from cache
	// when possible. userActivated reports whether the request was triggered
	// by a user gesture; model download may only start from one.
	GetNotes(ctx context.Context, videoID string, userActivated bool) (string, error)
}

type notesUsecase struct {
	cache       repository.IStudyCache
	transcripts ITranscriptUsecase
	summarizer  repository.ISummarizer // nil when no model runtime is configured
}

func NewNotesUsecase(cache repository.IStudyCache, transcripts ITranscriptUsecase, summarizer repository.ISummarizer) INotesUsecase {
	return &notesUsecase{cache: cache, transcripts: transcripts, summarizer: summarizer}
}

func (u *notesUsecase) GetNotes(ctx context.Context, videoID string, userActivated bool) (string, error) {
	if raw, err := u.cache.Get(ctx, repository.CacheNotes, videoID); err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Warn("notes cache read failed")
	} else if raw != nil {
		var cached string
		if err := json.Unmarshal(raw, &cached); err == nil && cached != "" {
			return cached, nil
		}
	}

	transcript, err := u.transcripts.GetTranscript(ctx, videoID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(transcript) == "" {
		return "", model.ErrEmptyTranscript
	}

	if u.summarizer == nil {
		return "", model.ErrCapabilityUnavailable
	}
	if err := checkCapability(ctx, u.summarizer.Availability, userActivated); err != nil {
		return "", err
	}

	notes, err := u.summarizer.Summarize(ctx, transcript, notesInstruction)
	if err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Error("summarization failed, resetting summarizer")
		u.summarizer.Reset()
		return "", err
	}

	if err := u.cache.Set(ctx, repository.CacheNotes, videoID, notes); err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Warn("notes cache write failed")
	}
	return notes, nil
}

// checkCapability gates model use on readiness. A model that still needs
// downloading may only be triggered from a user gesture.
func checkCapability(ctx context.Context, availability func(context.Context) (repository.Availability, error), userActivated bool) error {
	state, err := availability(ctx)
	if err != nil {
		return err
	}
	switch state {
	case repository.AvailabilityAvailable:
		return nil
	case repository.AvailabilityDownloadable, repository.AvailabilityDownloading:
		if !userActivated {
			return model.ErrActivationRequired
		}
		return nil
	default:
		return model.ErrCapabilityUnavailable
	}
}
