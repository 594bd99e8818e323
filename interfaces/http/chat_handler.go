package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tubetutor/domain/dto"
	"tubetutor/infrastructure/realtime"
	"tubetutor/usecase"
)

type IChatHandler interface {
	Prompt(ctx *gin.Context)
	ClearSession(ctx *gin.Context)
}

type ChatHandler struct {
	chatUsecase usecase.IChatUsecase
}

func NewChatHandler(uc usecase.IChatUsecase) IChatHandler {
	return &ChatHandler{chatUsecase: uc}
}

// Prompt runs one conversation turn and streams the reply as server-sent
// events. Validation errors are rejected before the stream opens; failures
// after that arrive as a chat_error event on the stream itself.
func (h *ChatHandler) Prompt(ctx *gin.Context) {
	videoID := ctx.Param("videoId")

	var req dto.ChatPromptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errors.New("invalid request body: history is required")))
		return
	}

	stream := realtime.NewChatStream(ctx)
	h.chatUsecase.SendMessage(ctx.Request.Context(), videoID, req, stream.Send)
}

func (h *ChatHandler) ClearSession(ctx *gin.Context) {
	h.chatUsecase.ClearSession(ctx.Param("videoId"))
	ctx.Status(http.StatusNoContent)
}
