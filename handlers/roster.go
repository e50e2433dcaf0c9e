package handlers

import (
	"net/http"

	rosterRepo "teambond/database/repository/roster"
	"teambond/models"
	"teambond/utils"

	"github.com/gin-gonic/gin"
)

// RosterHandler exposes team-member CRUD.
type RosterHandler struct {
	Repo rosterRepo.TeamMemberRepository
}

// NewRosterHandler returns a RosterHandler backed by the given repository.
func NewRosterHandler(repo rosterRepo.TeamMemberRepository) *RosterHandler {
	return &RosterHandler{Repo: repo}
}

// CreateMemberHandler adds a team member to the roster.
func (h *RosterHandler) CreateMemberHandler(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid team member", err.Error())
		return
	}
	if member.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid team member", "name is required")
		return
	}
	if member.Vibe == "" {
		member.Vibe = models.VibeMixed
	}

	id, err := h.Repo.Create(c.Request.Context(), member)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create team member", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListMembersHandler returns the full roster.
func (h *RosterHandler) ListMembersHandler(c *gin.Context) {
	members, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list team members", err.Error())
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetMemberHandler returns one team member by ID.
func (h *RosterHandler) GetMemberHandler(c *gin.Context) {
	member, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Team member not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMemberHandler replaces a team member's editable fields.
func (h *RosterHandler) UpdateMemberHandler(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid team member", err.Error())
		return
	}
	if err := h.Repo.Update(c.Request.Context(), c.Param("id"), member); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update team member", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteMemberHandler removes a team member.
func (h *RosterHandler) DeleteMemberHandler(c *gin.Context) {
	if err := h.Repo.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to delete team member", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
