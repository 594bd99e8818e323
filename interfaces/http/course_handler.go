package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubetutor/domain/dto"
	"tubetutor/domain/model"
	"tubetutor/infrastructure/logger"
	"tubetutor/usecase"
)

type ICourseHandler interface {
	Enroll(ctx *gin.Context)
	List(ctx *gin.Context)
	EnrollmentStatus(ctx *gin.Context)
	VideoEnrollmentStatus(ctx *gin.Context)
	Unenroll(ctx *gin.Context)
	SetCompleted(ctx *gin.Context)
}

type CourseHandler struct {
	courseUsecase usecase.ICourseUsecase
}

func NewCourseHandler(uc usecase.ICourseUsecase) ICourseHandler {
	return &CourseHandler{courseUsecase: uc}
}

// Enroll accepts the course asynchronously: the caller gets 202 once the
// request is valid, matching the fire-and-forget contract of the enrollment
// flow. The write itself still happens before the response is sent.
func (h *CourseHandler) Enroll(ctx *gin.Context) {
	var req dto.EnrollCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errors.New("invalid request body: playlistId is required")))
		return
	}

	if err := h.courseUsecase.Enroll(ctx.Request.Context(), req.ToCourse()); err != nil {
		logger.GetLogger().WithField("playlistId", req.PlaylistID).WithField("error", err.Error()).
			Error("enrollment failed")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"success": true})
}

func (h *CourseHandler) List(ctx *gin.Context) {
	courses, err := h.courseUsecase.List(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.CoursesResponse{Success: true, Courses: courses})
}

func (h *CourseHandler) EnrollmentStatus(ctx *gin.Context) {
	enrolled, err := h.courseUsecase.IsEnrolled(ctx.Request.Context(), ctx.Param("playlistId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.EnrollmentStatusResponse{IsEnrolled: enrolled})
}

func (h *CourseHandler) VideoEnrollmentStatus(ctx *gin.Context) {
	enrolled, err := h.courseUsecase.IsVideoEnrolled(ctx.Request.Context(), ctx.Param("playlistId"), ctx.Param("videoId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.EnrollmentStatusResponse{IsEnrolled: enrolled})
}

func (h *CourseHandler) Unenroll(ctx *gin.Context) {
	courses, err := h.courseUsecase.Unenroll(ctx.Request.Context(), ctx.Param("playlistId"))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.CoursesResponse{Success: true, Courses: courses})
}

func (h *CourseHandler) SetCompleted(ctx *gin.Context) {
	var req dto.MarkCompletedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errors.New("invalid request body: isCompleted is required")))
		return
	}

	courses, err := h.courseUsecase.SetCompleted(ctx.Request.Context(), ctx.Param("playlistId"), *req.IsCompleted)
	if err != nil {
		if errors.Is(err, model.ErrCourseNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(err))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, dto.CoursesResponse{Success: true, Courses: courses})
}
