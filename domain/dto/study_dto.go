package dto

import "tubetutor/domain/model"

// ErrorResponse is the uniform failure envelope for request/response calls.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{Success: false, Error: err.Error()}
}

type TranscriptResponse struct {
	Success    bool   `json:"success"`
	Transcript string `json:"transcript"`
}

type NotesResponse struct {
	Success bool   `json:"success"`
	Notes   string `json:"notes"`
}

type QuizResponse struct {
	Success bool        `json:"success"`
	Quiz    *model.Quiz `json:"quiz"`
}
