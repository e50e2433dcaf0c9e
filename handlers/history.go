package handlers

import (
	"net/http"
	"strconv"

	historyRepo "teambond/database/repository/history"
	"teambond/models"
	"teambond/utils"

	"github.com/gin-gonic/gin"
)

// HistoryHandler exposes the saved-event history store.
type HistoryHandler struct {
	Repo historyRepo.SavedEventRepository
}

// NewHistoryHandler returns a HistoryHandler backed by the given repository.
func NewHistoryHandler(repo historyRepo.SavedEventRepository) *HistoryHandler {
	return &HistoryHandler{Repo: repo}
}

// SaveEventHandler promotes a plan to a persisted event.
func (h *HistoryHandler) SaveEventHandler(c *gin.Context) {
	var event models.SavedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid saved event", err.Error())
		return
	}
	if event.Theme == "" || len(event.Phases) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid saved event", "theme and phases are required")
		return
	}

	id, err := h.Repo.Create(c.Request.Context(), event)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save event", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListEventsHandler returns recent saved events, newest first. The optional
// "limit" query parameter caps the result (default 20).
func (h *HistoryHandler) ListEventsHandler(c *gin.Context) {
	limit := int64(20)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	events, err := h.Repo.GetRecent(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list events", err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEventHandler returns one saved event by ID.
func (h *HistoryHandler) GetEventHandler(c *gin.Context) {
	event, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Saved event not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, event)
}

// RateEventHandler records one member's rating for a saved event.
func (h *HistoryHandler) RateEventHandler(c *gin.Context) {
	var input struct {
		Member string `json:"member"`
		Rating int    `json:"rating"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rating", err.Error())
		return
	}
	if input.Member == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid rating", "member is required")
		return
	}
	if err := h.Repo.RateByMember(c.Request.Context(), c.Param("id"), input.Member, input.Rating); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to rate event", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rated"})
}

// DeleteEventHandler removes a saved event.
func (h *HistoryHandler) DeleteEventHandler(c *gin.Context) {
	if err := h.Repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete event", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
