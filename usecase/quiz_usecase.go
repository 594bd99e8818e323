package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/infrastructure/logger"
)

// DefaultQuizQuestionCount is used when the caller does not ask for a
// specific number of questions.
const DefaultQuizQuestionCount = 10

// quizSchema constrains model output to the quiz shape. The runtime rejects
// any completion that does not satisfy it.
const quizSchema = `{
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string"},
          "options": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 4,
            "maxItems": 4
          },
          "correctAnswerIndex": {
            "type": "integer",
            "minimum": 0,
            "maximum": 3
          }
        },
        "required": ["question", "options", "correctAnswerIndex"]
      }
    }
  },
  "required": ["questions"]
}`

type IQuizUsecase interface {
	// GetQuiz returns a multiple-choice quiz for the video. forceNew skips
	// the cache read (the fresh quiz still overwrites the cached one).
	GetQuiz(ctx context.Context, videoID string, forceNew bool, questionCount int, userActivated bool) (*model.Quiz, error)
}

type quizUsecase struct {
	cache         repository.IStudyCache
	transcripts   ITranscriptUsecase
	languageModel repository.ILanguageModel // nil when no model runtime is configured
}

func NewQuizUsecase(cache repository.IStudyCache, transcripts ITranscriptUsecase, languageModel repository.ILanguageModel) IQuizUsecase {
	return &quizUsecase{cache: cache, transcripts: transcripts, languageModel: languageModel}
}

func (u *quizUsecase) GetQuiz(ctx context.Context, videoID string, forceNew bool, questionCount int, userActivated bool) (*model.Quiz, error) {
	if questionCount <= 0 {
		questionCount = DefaultQuizQuestionCount
	}

	if !forceNew {
		if raw, err := u.cache.Get(ctx, repository.CacheQuiz, videoID); err != nil {
			logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
				Warn("quiz cache read failed")
		} else if raw != nil {
			var cached model.Quiz
			if err := json.Unmarshal(raw, &cached); err == nil && len(cached.Questions) > 0 {
				return &cached, nil
			}
		}
	}

	transcript, err := u.transcripts.GetTranscript(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, model.ErrEmptyTranscript
	}

	if u.languageModel == nil {
		return nil, model.ErrCapabilityUnavailable
	}
	if err := checkCapability(ctx, u.languageModel.Availability, userActivated); err != nil {
		return nil, err
	}

	prompt := buildQuizPrompt(transcript, questionCount)
	output, err := u.languageModel.Prompt(ctx, prompt, json.RawMessage(quizSchema))
	if err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Error("quiz generation failed, resetting language model")
		u.languageModel.Reset()
		return nil, err
	}

	var quiz model.Quiz
	if err := json.Unmarshal([]byte(output), &quiz); err != nil {
		u.languageModel.Reset()
		return nil, fmt.Errorf("quiz output is not valid JSON: %w", err)
	}
	if err := quiz.Validate(questionCount); err != nil {
		u.languageModel.Reset()
		return nil, err
	}

	if err := u.cache.Set(ctx, repository.CacheQuiz, videoID, &quiz); err != nil {
		logger.GetLogger().WithField("videoId", videoID).WithField("error", err).
			Warn("quiz cache write failed")
	}
	return &quiz, nil
}

func buildQuizPrompt(transcript string, questionCount int) string {
	return fmt.Sprintf(
		"Based on the following video transcript, generate a quiz with exactly %d multiple-choice questions. "+
			"Each question must have exactly 4 options and indicate the index of the correct one.\n\nTranscript:\n%s",
		questionCount, transcript)
}
