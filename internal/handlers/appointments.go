package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/calendar"
	"vytara-server/internal/models"
	"vytara-server/internal/store"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// AppointmentHandler exposes the host side of the appointment collection.
type AppointmentHandler struct {
	Logger *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Logger: logger}
}

// AppointmentRequest represents the request body for creating or replacing
// an appointment. Type defaults to consultation.
type AppointmentRequest struct {
	ID       string                 `json:"id"`
	Date     string                 `json:"date" validate:"required,datekey"`
	Time     string                 `json:"time" validate:"required,clock"`
	Title    string                 `json:"title" validate:"required"`
	Type     models.AppointmentType `json:"type" validate:"omitempty,oneof=consultation follow-up test/scan procedure other"`
	Doctor   string                 `json:"doctor"`
	Facility string                 `json:"facility"`
}

func (r AppointmentRequest) appointment(id string) models.Appointment {
	a := models.Appointment{
		ID:       id,
		Date:     r.Date,
		Time:     r.Time,
		Title:    strings.TrimSpace(r.Title),
		Type:     r.Type,
		Doctor:   strings.TrimSpace(r.Doctor),
		Facility: strings.TrimSpace(r.Facility),
	}
	if a.Type == "" {
		a.Type = models.DefaultAppointmentType
	}
	a.Normalize()
	return a
}

// GetAppointments lists every appointment by date, then time.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	appts, err := ws.Appointments()
	if err != nil {
		h.Logger.Error("list appointments", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetAppointmentsByDate lists one day's appointments by time.
func (h *AppointmentHandler) GetAppointmentsByDate(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	date := c.Param("date")
	if !calendar.ValidDateKey(date) {
		utils.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}
	appts, err := ws.AppointmentsOn(date)
	if err != nil {
		h.Logger.Error("list appointments by date", zap.String("user", ws.User()), zap.String("date", date), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetVisit returns an appointment with the documents filed against it.
func (h *AppointmentHandler) GetVisit(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	visit, err := ws.Visit(c.Param("id"))
	if err != nil {
		if errors.Is(err, workspace.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		h.Logger.Error("load visit", zap.String("user", ws.User()), zap.String("appointment_id", c.Param("id")), zap.Error(err))
		utils.InternalServerError(c, "Failed to fetch visit")
		return
	}
	utils.Success(c, "Visit fetched successfully", visit)
}

// CreateAppointment upserts an appointment. A missing id gets a new one.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = models.NewID()
	}
	h.save(c, req.appointment(id), true)
}

// UpdateAppointment replaces the appointment with the path id.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	h.save(c, req.appointment(c.Param("id")), false)
}

func (h *AppointmentHandler) save(c *gin.Context, a models.Appointment, created bool) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	if err := ws.AddAppointment(a); err != nil {
		if errors.Is(err, store.ErrConflict) {
			utils.Conflict(c, "Appointment id is already in use")
			return
		}
		utils.InternalServerError(c, "Failed to save appointment")
		return
	}
	if created {
		utils.Created(c, "Appointment saved successfully", a)
		return
	}
	utils.Success(c, "Appointment updated successfully", a)
}

// DeleteAppointment removes an appointment. Unknown ids succeed.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	if err := ws.RemoveAppointment(c.Param("id")); err != nil {
		utils.InternalServerError(c, "Failed to delete appointment")
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}
