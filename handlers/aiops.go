package handlers

import (
	"net/http"

	"teambond/services/intelligence"
	"teambond/utils"

	"github.com/gin-gonic/gin"
)

// AIOpsHandler exposes provider telemetry: rolling performance stats and
// A/B test management.
type AIOpsHandler struct {
	Registry *intelligence.Registry
}

// NewAIOpsHandler returns an AIOpsHandler for the given registry.
func NewAIOpsHandler(registry *intelligence.Registry) *AIOpsHandler {
	return &AIOpsHandler{Registry: registry}
}

// ProviderStatsHandler returns the per-provider rolling counters.
func (h *AIOpsHandler) ProviderStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Registry.Stats())
}

// SetupABTestHandler configures a named A/B test over a provider set.
func (h *AIOpsHandler) SetupABTestHandler(c *gin.Context) {
	var input struct {
		TestName     string             `json:"test_name"`
		Providers    []string           `json:"providers"`
		TrafficSplit map[string]float64 `json:"traffic_split,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid A/B test config", err.Error())
		return
	}
	if input.TestName == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid A/B test config", "test_name is required")
		return
	}
	if err := h.Registry.SetupABTest(input.TestName, input.Providers, input.TrafficSplit); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to set up A/B test", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "configured", "test_name": input.TestName})
}

// ABTestResultsHandler returns the aggregated outcomes for a named test.
func (h *AIOpsHandler) ABTestResultsHandler(c *gin.Context) {
	results, err := h.Registry.ABTestResults(c.Param("name"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "A/B test not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, results)
}
