package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/directory"
	"vytara-server/internal/models"
	"vytara-server/internal/store"
	"vytara-server/internal/utils"
)

// DirectoryHandler serves provider search and booking.
type DirectoryHandler struct {
	Directory *directory.Directory
	Logger    *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(dir *directory.Directory, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{Directory: dir, Logger: logger}
}

// Search lists providers of the path kind matching ?q=.
func (h *DirectoryHandler) Search(c *gin.Context) {
	providers, err := h.Directory.Search(models.ProviderKind(c.Param("kind")), c.Query("q"))
	if err != nil {
		utils.NotFound(c, "Unknown directory")
		return
	}
	utils.Success(c, "Providers fetched successfully", providers)
}

// Book creates an appointment with a hospital or lab.
func (h *DirectoryHandler) Book(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}

	provider, err := h.Directory.Find(models.ProviderKind(c.Param("kind")), c.Param("id"))
	if err != nil {
		if errors.Is(err, directory.ErrUnknownKind) {
			utils.NotFound(c, "Unknown directory")
			return
		}
		utils.NotFound(c, "Provider not found")
		return
	}
	if !provider.Kind.Bookable() {
		utils.BadRequest(c, "Bookings are only available for hospitals and labs")
		return
	}

	var req directory.Booking
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	a, err := directory.Book(provider, req, ws.Today())
	if err != nil {
		respondValidation(c, err)
		return
	}

	if err := ws.AddAppointment(a); err != nil {
		if errors.Is(err, store.ErrConflict) {
			utils.Conflict(c, "Appointment id is already in use")
			return
		}
		utils.InternalServerError(c, "Failed to book appointment")
		return
	}
	h.Logger.Info("provider booked",
		zap.String("user", ws.User()),
		zap.String("provider", provider.ID),
		zap.String("appointment_id", a.ID))
	utils.Created(c, "Appointment booked successfully", a)
}
