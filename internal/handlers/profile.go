package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/models"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// ProfileHandler handles the medical intake profile.
type ProfileHandler struct {
	Logger *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{Logger: logger}
}

// EmergencyContactsRequest replaces the emergency contact list.
type EmergencyContactsRequest struct {
	Contacts []models.EmergencyContact `json:"contacts"`
}

// GetProfile returns the caller's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	utils.Success(c, "Profile fetched successfully", ws.Profile())
}

// UpdateProfile replaces the whole profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req models.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	profile, err := ws.SetProfile(req)
	if err != nil {
		respondValidation(c, err)
		return
	}
	utils.Success(c, "Profile updated successfully", profile)
}

// ValidateSection checks one step of the intake form without saving it.
func (h *ProfileHandler) ValidateSection(c *gin.Context) {
	var req models.UserProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	section := c.Param("section")
	if err := workspace.ValidateSection(section, req); err != nil {
		if errors.Is(err, workspace.ErrUnknownSection) {
			utils.NotFound(c, "Unknown profile section: "+section)
			return
		}
		respondValidation(c, err)
		return
	}
	utils.Success(c, "Section is valid", nil)
}

// UpdateEmergencyContacts replaces the contact list.
func (h *ProfileHandler) UpdateEmergencyContacts(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	var req EmergencyContactsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	contacts, err := ws.SetEmergencyContacts(req.Contacts)
	if err != nil {
		respondValidation(c, err)
		return
	}
	utils.Success(c, "Emergency contacts updated successfully", contacts)
}

// DeleteEmergencyContact removes the contact at the path index.
func (h *ProfileHandler) DeleteEmergencyContact(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		utils.BadRequest(c, "Index must be a number")
		return
	}
	contacts, err := ws.RemoveEmergencyContact(index)
	if err != nil {
		if errors.Is(err, workspace.ErrIndexOutOfRange) {
			utils.NotFound(c, "Emergency contact not found")
			return
		}
		h.Logger.Error("remove emergency contact", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Failed to remove emergency contact")
		return
	}
	utils.Success(c, "Emergency contact removed successfully", contacts)
}

// GetDoctors lists the caller's medical team.
func (h *ProfileHandler) GetDoctors(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	utils.Success(c, "Doctors fetched successfully", ws.Doctors())
}

// respondValidation writes field errors as 422 and anything else as 400.
func respondValidation(c *gin.Context, err error) {
	if fields, ok := utils.FieldErrorsOf(err); ok {
		utils.ValidationFailed(c, fields, nil)
		return
	}
	utils.BadRequest(c, err.Error())
}
