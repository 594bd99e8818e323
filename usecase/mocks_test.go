package usecase_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"tubetutor/domain/model"
	"tubetutor/domain/repository"
)

// Mock implementations

type MockCaptionSource struct {
	mock.Mock
	name string
}

func (m *MockCaptionSource) Name() string { return m.name }

func (m *MockCaptionSource) Fetch(ctx context.Context, videoID string) (string, error) {
	args := m.Called(ctx, videoID)
	return args.String(0), args.Error(1)
}

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Availability(ctx context.Context) (repository.Availability, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.Availability), args.Error(1)
}

func (m *MockSummarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	args := m.Called(ctx, text, instruction)
	return args.String(0), args.Error(1)
}

func (m *MockSummarizer) Reset() {
	m.Called()
}

type MockLanguageModel struct {
	mock.Mock
}

func (m *MockLanguageModel) Availability(ctx context.Context) (repository.Availability, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.Availability), args.Error(1)
}

func (m *MockLanguageModel) Prompt(ctx context.Context, prompt string, schema json.RawMessage) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

func (m *MockLanguageModel) Reset() {
	m.Called()
}

func (m *MockLanguageModel) NewChat(ctx context.Context, initial []model.ChatMessage) (repository.IChatSession, error) {
	args := m.Called(ctx, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.IChatSession), args.Error(1)
}

type MockChatSession struct {
	mock.Mock
}

func (m *MockChatSession) PromptStreaming(ctx context.Context, userPrompt string, onChunk func(string)) error {
	args := m.Called(ctx, userPrompt, onChunk)
	return args.Error(0)
}

func (m *MockChatSession) Destroy() {
	m.Called()
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) IsEnrolled(ctx context.Context, playlistID string) (bool, error) {
	args := m.Called(ctx, playlistID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) IsVideoEnrolled(ctx context.Context, playlistID, videoID string) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) Enroll(ctx context.Context, course model.Course) (bool, error) {
	args := m.Called(ctx, course)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) Unenroll(ctx context.Context, playlistID string) ([]model.Course, error) {
	args := m.Called(ctx, playlistID)
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) SetCompleted(ctx context.Context, playlistID string, isCompleted bool) ([]model.Course, error) {
	args := m.Called(ctx, playlistID, isCompleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

type MockPlaylistDirectory struct {
	mock.Mock
}

func (m *MockPlaylistDirectory) GetPlaylist(ctx context.Context, playlistID string) (*model.Course, error) {
	args := m.Called(ctx, playlistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

type MockTranscriptUsecase struct {
	mock.Mock
}

func (m *MockTranscriptUsecase) GetTranscript(ctx context.Context, videoID string) (string, error) {
	args := m.Called(ctx, videoID)
	return args.String(0), args.Error(1)
}
