package handlers

import (
	"log/slog"
	"time"

	"learnboard/services/api-gateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *AuthHandler
	Plan     *PlanHandler
	Progress *ProgressHandler
	Health   *HealthHandler
}

func NewRouter(logger *slog.Logger, allowedOrigins []string, limiter *middleware.RateLimiter, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())

	config := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		config.AllowOrigins = allowedOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", h.Health.Check)

	api := r.Group("/api")
	api.Use(middleware.BearerToken())
	{
		api.POST("/login", limiter.Limit("login", 5, 1*time.Minute), h.Auth.Login)
		api.POST("/register", limiter.Limit("register", 3, 1*time.Minute), h.Auth.Register)
		api.GET("/verify-token", h.Auth.VerifyToken)

		plans := api.Group("/learning-plan")
		{
			plans.GET("/all", h.Plan.List)
			plans.DELETE("/:id", h.Plan.Delete)
		}
		api.POST("/generate-plan", h.Plan.Generate)

		api.GET("/analytics/progress", h.Progress.Progress)
		api.POST("/activity/log", h.Progress.LogActivity)
	}

	return r
}
