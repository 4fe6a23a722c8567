package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/domain"
)

// writeError is the single place domain errors become HTTP statuses.
func writeError(c *gin.Context, err error) {
	status, detail := http.StatusInternalServerError, "Internal server error"

	var limit *domain.UnfinishedLimitError
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		unauthorized(c)
		return
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status, detail = http.StatusBadRequest, "Username already registered"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, detail = http.StatusBadRequest, "Invalid credentials"
	case errors.As(err, &limit):
		status, detail = http.StatusBadRequest, limit.Error()
	case errors.Is(err, domain.ErrPlanNotFound):
		status, detail = http.StatusNotFound, "Learning plan not found"
	case errors.Is(err, domain.ErrUserNotFound):
		status, detail = http.StatusNotFound, "User not found"
	case errors.Is(err, api.ErrInvalidPayload):
		status, detail = http.StatusUnprocessableEntity, err.Error()
	}

	if status >= 500 {
		loggerFrom(c).ErrorContext(c, "Request failed", slog.Any("error", err))
	}
	c.AbortWithStatusJSON(status, api.BackendError{Detail: detail})
}

// bindJSON decodes the body and runs the contract validation tags on it.
func bindJSON(c *gin.Context, dst any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", api.ErrInvalidPayload, err)
	}
	return api.Validate(dst)
}
