package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth      *AuthHandler
	Plan      *PlanHandler
	Analytics *AnalyticsHandler
}

func NewRouter(logger *slog.Logger, authn Authenticator, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register/", h.Auth.Register)
	r.POST("/login/", h.Auth.Login)

	protected := r.Group("/", authMiddleware(authn))
	{
		protected.GET("/verify-token/", h.Auth.VerifyToken)
		protected.POST("/generate-plan/", h.Plan.Generate)
		protected.GET("/learning-plan/all", h.Plan.List)
		protected.DELETE("/learning-plan/:id", h.Plan.Delete)
		protected.POST("/activity/log", h.Plan.LogActivity)
		protected.GET("/analytics/progress", h.Analytics.Progress)
	}

	return r
}
