package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "tubetutor/interfaces/http"
	"tubetutor/interfaces/middleware"
)

func InitiateRouter(
	courseHandler httpHandler.ICourseHandler,
	studyHandler httpHandler.IStudyHandler,
	chatHandler httpHandler.IChatHandler,
	healthHandler httpHandler.IHealthHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-Id", "X-User-Activation"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: false,
		// Browser extension surfaces call from their own origin scheme;
		// localhost covers development tooling.
		AllowOriginFunc: func(origin string) bool {
			return strings.HasPrefix(origin, "chrome-extension://") ||
				strings.HasPrefix(origin, "moz-extension://") ||
				strings.HasPrefix(origin, "http://localhost") ||
				strings.HasPrefix(origin, "https://localhost")
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler.Healthz)

	api := router.Group("api")

	api.POST("/courses", courseHandler.Enroll)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:playlistId/status", courseHandler.EnrollmentStatus)
	api.GET("/courses/:playlistId/videos/:videoId/status", courseHandler.VideoEnrollmentStatus)
	api.DELETE("/courses/:playlistId", courseHandler.Unenroll)
	api.PATCH("/courses/:playlistId/completed", courseHandler.SetCompleted)

	api.GET("/videos/:videoId/transcript", studyHandler.GetTranscript)
	api.GET("/videos/:videoId/notes", studyHandler.GetNotes)
	api.GET("/videos/:videoId/quiz", studyHandler.GetQuiz)

	api.POST("/videos/:videoId/chat", chatHandler.Prompt)
	api.DELETE("/videos/:videoId/chat", chatHandler.ClearSession)

	return router
}
