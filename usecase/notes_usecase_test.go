package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/usecase"
)

func TestNotesUsecase_GeneratesAndCaches(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	summarizer := new(MockSummarizer)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("a transcript", nil).Once()
	summarizer.On("Availability", ctx).Return(repository.AvailabilityAvailable, nil)
	summarizer.On("Summarize", ctx, "a transcript", mock.AnythingOfType("string")).
		Return("- key point", nil).Once()

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, summarizer)

	notes, err := uc.GetNotes(ctx, "vid-1", true)
	require.NoError(t, err)
	assert.Equal(t, "- key point", notes)

	// Second call is a cache hit: no transcript fetch, no summarization.
	notes, err = uc.GetNotes(ctx, "vid-1", true)
	require.NoError(t, err)
	assert.Equal(t, "- key point", notes)
	transcripts.AssertNumberOfCalls(t, "GetTranscript", 1)
	summarizer.AssertNumberOfCalls(t, "Summarize", 1)
}

func TestNotesUsecase_TranscriptFailurePropagates(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("", model.ErrCaptionsUnavailable)

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, new(MockSummarizer))

	_, err := uc.GetNotes(ctx, "vid-1", true)
	assert.ErrorIs(t, err, model.ErrCaptionsUnavailable)
}

func TestNotesUsecase_EmptyTranscript(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("   ", nil)

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, new(MockSummarizer))

	_, err := uc.GetNotes(ctx, "vid-1", true)
	assert.ErrorIs(t, err, model.ErrEmptyTranscript)
}

func TestNotesUsecase_NoSummarizerConfigured(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("a transcript", nil)

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, nil)

	_, err := uc.GetNotes(ctx, "vid-1", true)
	assert.ErrorIs(t, err, model.ErrCapabilityUnavailable)
}

func TestNotesUsecase_DownloadableModelNeedsActivation(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	summarizer := new(MockSummarizer)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("a transcript", nil)
	summarizer.On("Availability", ctx).Return(repository.AvailabilityDownloadable, nil)

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, summarizer)

	_, err := uc.GetNotes(ctx, "vid-1", false)
	assert.ErrorIs(t, err, model.ErrActivationRequired)

	// With a user gesture the download may proceed.
	summarizer.On("Summarize", ctx, "a transcript", mock.AnythingOfType("string")).
		Return("notes", nil)
	notes, err := uc.GetNotes(ctx, "vid-1", true)
	require.NoError(t, err)
	assert.Equal(t, "notes", notes)
}

func TestNotesUsecase_UnavailableModel(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	summarizer := new(MockSummarizer)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("a transcript", nil)
	summarizer.On("Availability", ctx).Return(repository.AvailabilityUnavailable, nil)

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, summarizer)

	_, err := uc.GetNotes(ctx, "vid-1", true)
	assert.ErrorIs(t, err, model.ErrCapabilityUnavailable)
}

func TestNotesUsecase_SummarizeFailureResetsCapability(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	summarizer := new(MockSummarizer)
	transcripts.On("GetTranscript", ctx, "vid-1").Return("a transcript", nil)
	summarizer.On("Availability", ctx).Return(repository.AvailabilityAvailable, nil)
	summarizer.On("Summarize", ctx, "a transcript", mock.AnythingOfType("string")).
		Return("", errors.New("model crashed"))
	summarizer.On("Reset").Return()

	uc := usecase.NewNotesUsecase(newStudyCache(), transcripts, summarizer)

	_, err := uc.GetNotes(ctx, "vid-1", true)
	require.Error(t, err)
	summarizer.AssertCalled(t, "Reset")
}
