package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"learnboard/pkg/api"

	"github.com/gin-gonic/gin"
)

var (
	listPlansRoute = route{
		name:    "list-plans",
		method:  http.MethodGet,
		message: "Failed to fetch learning plans",
	}
	deletePlanRoute = route{
		name:    "delete-plan",
		method:  http.MethodDelete,
		message: "Failed to delete learning plan",
	}
	generatePlanRoute = route{
		name:        "generate-plan",
		method:      http.MethodPost,
		message:     "Failed to generate learning plan",
		payload:     func() any { return &api.CreatePlanRequest{} },
		relayDetail: true,
	}
)

type PlanHandler struct {
	proxy
}

func NewPlanHandler(backend Backend) *PlanHandler {
	return &PlanHandler{proxy{backend: backend}}
}

// GET /api/learning-plan/all
func (h *PlanHandler) List(c *gin.Context) {
	path := "/learning-plan/all"
	if status := c.Query("status"); status == "completed" || status == "in_progress" {
		path += "?status=" + status
	}
	h.forward(c, listPlansRoute, path)
}

// DELETE /api/learning-plan/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, deletePlanRoute, fmt.Errorf("invalid plan id %q", c.Param("id")))
		return
	}
	h.forward(c, deletePlanRoute, "/learning-plan/"+strconv.FormatInt(id, 10))
}

// POST /api/generate-plan
func (h *PlanHandler) Generate(c *gin.Context) {
	h.forward(c, generatePlanRoute, "/generate-plan/")
}
