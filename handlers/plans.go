package handlers

import (
	"net/http"

	"teambond/models"
	"teambond/services/intelligence"
	"teambond/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanHandler exposes the plan generation pipeline.
type PlanHandler struct {
	Svc intelligence.PlanService
}

// NewPlanHandler returns a PlanHandler backed by the given service.
func NewPlanHandler(svc intelligence.PlanService) *PlanHandler {
	return &PlanHandler{Svc: svc}
}

// GeneratePlansHandler drafts event plans for the posted request. The
// response always carries a non-empty plan list; total pipeline failure
// degrades to the fallback set rather than an error status.
func (h *PlanHandler) GeneratePlansHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid generation request", err.Error())
		return
	}
	if req.Theme == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid generation request", "theme is required")
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeNew
	}

	result := h.Svc.GeneratePlans(c.Request.Context(), req)
	logger.Info("Plan generation completed",
		zap.String("theme", req.Theme),
		zap.String("mode", string(req.Mode)),
		zap.String("provider", result.Provider),
		zap.Bool("fallback", result.FallbackUsed),
		zap.Int("plans", len(result.Plans)))

	c.JSON(http.StatusOK, result)
}
