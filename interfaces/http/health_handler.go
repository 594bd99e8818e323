package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tubetutor/domain/repository"
)

type IHealthHandler interface {
	Healthz(ctx *gin.Context)
}

type HealthHandler struct {
	storageDriver string
	summarizer    repository.ISummarizer    // nil when no model runtime is configured
	languageModel repository.ILanguageModel // same
}

func NewHealthHandler(storageDriver string, summarizer repository.ISummarizer, languageModel repository.ILanguageModel) IHealthHandler {
	return &HealthHandler{storageDriver: storageDriver, summarizer: summarizer, languageModel: languageModel}
}

// Healthz reports process liveness plus the readiness of the AI capabilities.
// The endpoint itself always answers 200; degraded capabilities show up in
// the payload, not the status code.
func (h *HealthHandler) Healthz(ctx *gin.Context) {
	summarizer := string(repository.AvailabilityUnavailable)
	languageModel := string(repository.AvailabilityUnavailable)

	if h.summarizer != nil {
		if state, err := h.summarizer.Availability(ctx.Request.Context()); err == nil {
			summarizer = string(state)
		}
	}
	if h.languageModel != nil {
		if state, err := h.languageModel.Availability(ctx.Request.Context()); err == nil {
			languageModel = string(state)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": h.storageDriver,
		"capabilities": gin.H{
			"summarizer":    summarizer,
			"languageModel": languageModel,
		},
	})
}
