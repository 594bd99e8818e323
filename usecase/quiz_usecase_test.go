package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
	"tubetutor/usecase"
)

func quizJSON(questionCount int) string {
	quiz := model.Quiz{}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Question:           fmt.Sprintf("Question %d?", i+1),
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: i % 4,
		})
	}
	raw, _ := json.Marshal(quiz)
	return string(raw)
}

func newQuizMocks(transcript string) (*MockTranscriptUsecase, *MockLanguageModel) {
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", mock.Anything, "vid-1").Return(transcript, nil)
	languageModel := new(MockLanguageModel)
	languageModel.On("Availability", mock.Anything).Return(repository.AvailabilityAvailable, nil)
	return transcripts, languageModel
}

func TestQuizUsecase_GeneratesDefaultSizedQuiz(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(quizJSON(usecase.DefaultQuizQuestionCount), nil).Once()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	quiz, err := uc.GetQuiz(ctx, "vid-1", false, 0, true)
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Len(t, quiz.Questions, usecase.DefaultQuizQuestionCount)

	// The prompt names the requested question count and carries the transcript.
	prompt := languageModel.Calls[1].Arguments.String(1)
	assert.Contains(t, prompt, "10 multiple-choice questions")
	assert.Contains(t, prompt, "a transcript")
}

func TestQuizUsecase_CustomQuestionCount(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(quizJSON(5), nil)

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	quiz, err := uc.GetQuiz(ctx, "vid-1", false, 5, true)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 5)
}

func TestQuizUsecase_SecondCallServedFromCache(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(quizJSON(10), nil).Once()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 0, true)
	require.NoError(t, err)
	_, err = uc.GetQuiz(ctx, "vid-1", false, 0, true)
	require.NoError(t, err)
	languageModel.AssertNumberOfCalls(t, "Prompt", 1)
}

func TestQuizUsecase_ForceNewBypassesCache(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(quizJSON(10), nil).Twice()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 0, true)
	require.NoError(t, err)
	_, err = uc.GetQuiz(ctx, "vid-1", true, 0, true)
	require.NoError(t, err)
	languageModel.AssertNumberOfCalls(t, "Prompt", 2)
}

func TestQuizUsecase_MalformedModelOutput(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return("I cannot do that", nil)
	languageModel.On("Reset").Return()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 0, true)
	assert.ErrorContains(t, err, "not valid JSON")
	languageModel.AssertCalled(t, "Reset")
}

func TestQuizUsecase_WrongShapeRejected(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	// Three options instead of four.
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(`{"questions":[{"question":"Q?","options":["a","b","c"],"correctAnswerIndex":0}]}`, nil)
	languageModel.On("Reset").Return()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 1, true)
	assert.ErrorContains(t, err, "options")
}

func TestQuizUsecase_AnswerIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	transcripts, languageModel := newQuizMocks("a transcript")
	languageModel.On("Prompt", ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(`{"questions":[{"question":"Q?","options":["a","b","c","d"],"correctAnswerIndex":4}]}`, nil)
	languageModel.On("Reset").Return()

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 1, true)
	assert.ErrorContains(t, err, "out of range")
}

func TestQuizUsecase_NoLanguageModelConfigured(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", mock.Anything, "vid-1").Return("a transcript", nil)

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, nil)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 0, true)
	assert.ErrorIs(t, err, model.ErrCapabilityUnavailable)
}

func TestQuizUsecase_DownloadableModelNeedsActivation(t *testing.T) {
	ctx := context.Background()
	transcripts := new(MockTranscriptUsecase)
	transcripts.On("GetTranscript", mock.Anything, "vid-1").Return("a transcript", nil)
	languageModel := new(MockLanguageModel)
	languageModel.On("Availability", mock.Anything).Return(repository.AvailabilityDownloading, nil)

	uc := usecase.NewQuizUsecase(newStudyCache(), transcripts, languageModel)

	_, err := uc.GetQuiz(ctx, "vid-1", false, 0, false)
	assert.ErrorIs(t, err, model.ErrActivationRequired)
}
