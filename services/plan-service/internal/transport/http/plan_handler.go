package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learnboard/pkg/api"
	"learnboard/services/plan-service/internal/application/usecase"
)

type PlanHandler struct {
	plans    *usecase.PlanUseCase
	activity *usecase.ActivityUseCase
}

func NewPlanHandler(plans *usecase.PlanUseCase, activity *usecase.ActivityUseCase) *PlanHandler {
	return &PlanHandler{plans: plans, activity: activity}
}

func (h *PlanHandler) Generate(c *gin.Context) {
	var req api.CreatePlanRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	plan, err := h.plans.Generate(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPlan(*plan))
}

func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.plans.List(c.Request.Context(), currentUser(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]api.LearningPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlan(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, fmt.Errorf("%w: plan id %q", api.ErrInvalidPayload, c.Param("id")))
		return
	}

	if err := h.plans.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Learning plan deleted successfully"})
}

func (h *PlanHandler) LogActivity(c *gin.Context) {
	var req api.ActivityLogRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}

	entry, err := h.activity.Log(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toActivityLog(entry))
}
