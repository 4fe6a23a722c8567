package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"learnboard/services/plan-service/internal/application/usecase"
)

type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) Progress(c *gin.Context) {
	stats, err := h.uc.Progress(c.Request.Context(), currentUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStats(stats))
}
