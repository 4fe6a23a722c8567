package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"learnboard/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	backend Pinger
}

func NewHealthHandler(backend Pinger) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// GET /healthz
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.backend.Ping(c); err != nil {
		middleware.Logger(c).WarnContext(c, "Backend unreachable", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "backend": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": "ok"})
}
