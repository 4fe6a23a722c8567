package handlers

import (
	"net/http"

	"learnboard/pkg/api"

	"github.com/gin-gonic/gin"
)

var (
	progressRoute = route{
		name:    "analytics-progress",
		method:  http.MethodGet,
		message: "Failed to fetch progress analytics",
	}
	logActivityRoute = route{
		name:    "log-activity",
		method:  http.MethodPost,
		message: "Failed to log activity",
		payload: func() any { return &api.ActivityLogRequest{} },
	}
)

type ProgressHandler struct {
	proxy
}

func NewProgressHandler(backend Backend) *ProgressHandler {
	return &ProgressHandler{proxy{backend: backend}}
}

// GET /api/analytics/progress
func (h *ProgressHandler) Progress(c *gin.Context) {
	h.forward(c, progressRoute, "/analytics/progress")
}

// POST /api/activity/log
func (h *ProgressHandler) LogActivity(c *gin.Context) {
	h.forward(c, logActivityRoute, "/activity/log")
}
