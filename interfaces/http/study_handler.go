package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tubetutor/domain/dto"
	"tubetutor/domain/model"
	"tubetutor/usecase"
)

// userActivationHeader reports whether the request came from a user gesture.
// Absent means activated, so only an explicit "false" blocks model download.
const userActivationHeader = "X-User-Activation"

type IStudyHandler interface {
	GetTranscript(ctx *gin.Context)
	GetNotes(ctx *gin.Context)
	GetQuiz(ctx *gin.Context)
}

type StudyHandler struct {
	transcriptUsecase usecase.ITranscriptUsecase
	notesUsecase      usecase.INotesUsecase
	quizUsecase       usecase.IQuizUsecase
}

func NewStudyHandler(tu usecase.ITranscriptUsecase, nu usecase.INotesUsecase, qu usecase.IQuizUsecase) IStudyHandler {
	return &StudyHandler{transcriptUsecase: tu, notesUsecase: nu, quizUsecase: qu}
}

func (h *StudyHandler) GetTranscript(ctx *gin.Context) {
	transcript, err := h.transcriptUsecase.GetTranscript(ctx.Request.Context(), ctx.Param("videoId"))
	if err != nil {
		ctx.JSON(studyErrorStatus(err), dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.TranscriptResponse{Success: true, Transcript: transcript})
}

func (h *StudyHandler) GetNotes(ctx *gin.Context) {
	notes, err := h.notesUsecase.GetNotes(ctx.Request.Context(), ctx.Param("videoId"), userActivated(ctx))
	if err != nil {
		ctx.JSON(studyErrorStatus(err), dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.NotesResponse{Success: true, Notes: notes})
}

func (h *StudyHandler) GetQuiz(ctx *gin.Context) {
	forceNew := ctx.Query("force_new") == "true"
	questionCount := 0
	if raw := ctx.Query("question_count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errors.New("question_count must be a positive integer")))
			return
		}
		questionCount = n
	}

	quiz, err := h.quizUsecase.GetQuiz(ctx.Request.Context(), ctx.Param("videoId"), forceNew, questionCount, userActivated(ctx))
	if err != nil {
		ctx.JSON(studyErrorStatus(err), dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.QuizResponse{Success: true, Quiz: quiz})
}

func userActivated(ctx *gin.Context) bool {
	return !strings.EqualFold(ctx.GetHeader(userActivationHeader), "false")
}

// studyErrorStatus maps study pipeline failures onto HTTP statuses.
func studyErrorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrCaptionsUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrEmptyTranscript):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrActivationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, model.ErrCapabilityUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
