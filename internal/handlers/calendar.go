package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vytara-server/internal/calendar"
	"vytara-server/internal/config"
	"vytara-server/internal/models"
	"vytara-server/internal/store"
	"vytara-server/internal/utils"
	"vytara-server/internal/workspace"
)

// exportDuration is the length of an exported appointment block.
const exportDuration = 30 * time.Minute

// CalendarHandler drives the calendar widget of the caller's workspace.
type CalendarHandler struct {
	Cfg    *config.Config
	Logger *zap.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(cfg *config.Config, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{Cfg: cfg, Logger: logger}
}

// ClickRequest is a click inside a day cell. AppointmentID is set when the
// click landed on a chip.
type ClickRequest struct {
	Date          string `json:"date" validate:"required"`
	AppointmentID string `json:"appointmentId"`
}

func (h *CalendarHandler) run(c *gin.Context, message string, action workspace.CalendarAction) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	state, err := ws.Calendar(action)
	if err == nil {
		utils.Success(c, message, state)
		return
	}

	if fields, ok := utils.FieldErrorsOf(err); ok {
		utils.ValidationFailed(c, fields, state)
		return
	}
	switch {
	case errors.Is(err, calendar.ErrPastDate):
		utils.BadRequest(c, "Appointments cannot be added on a past date")
	case errors.Is(err, calendar.ErrInvalidDate):
		utils.BadRequest(c, "Date must be in YYYY-MM-DD format")
	case errors.Is(err, calendar.ErrNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, calendar.ErrNoDialog), errors.Is(err, calendar.ErrWrongMode):
		utils.Conflict(c, err.Error())
	case errors.Is(err, store.ErrConflict):
		utils.Conflict(c, "Appointment id is already in use")
	default:
		h.Logger.Error("calendar action", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Calendar action failed")
	}
}

// GetCalendar renders the displayed month and dialog state.
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	h.run(c, "Calendar fetched successfully", nil)
}

// PrevMonth shows the previous month.
func (h *CalendarHandler) PrevMonth(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		v.PrevMonth()
		return nil
	})
}

// NextMonth shows the next month.
func (h *CalendarHandler) NextMonth(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		v.NextMonth()
		return nil
	})
}

// Today shows the current month.
func (h *CalendarHandler) Today(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, now time.Time) error {
		v.GoToToday(now)
		return nil
	})
}

// Click selects a day or an appointment chip.
func (h *CalendarHandler) Click(c *gin.Context) {
	var req ClickRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	h.run(c, "Calendar updated", func(v *calendar.View, appts []models.Appointment, now time.Time) error {
		return v.Click(now, appts, req.Date, req.AppointmentID)
	})
}

// Close dismisses the open dialog.
func (h *CalendarHandler) Close(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		v.Close()
		return nil
	})
}

// BeginEdit switches the detail dialog to edit mode.
func (h *CalendarHandler) BeginEdit(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		return v.BeginEdit()
	})
}

// CancelEdit returns the dialog to view mode.
func (h *CalendarHandler) CancelEdit(c *gin.Context) {
	h.run(c, "Calendar updated", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		return v.CancelEdit()
	})
}

// DeleteAppointment deletes the appointment shown in the dialog.
func (h *CalendarHandler) DeleteAppointment(c *gin.Context) {
	h.run(c, "Appointment deleted successfully", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		return v.Delete()
	})
}

// SaveAppointment submits the dialog form. Validation happens in the editor
// so that field messages come back alongside the still-open dialog.
func (h *CalendarHandler) SaveAppointment(c *gin.Context) {
	var draft calendar.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	h.run(c, "Appointment saved successfully", func(v *calendar.View, _ []models.Appointment, _ time.Time) error {
		return v.Save(draft)
	})
}

// Export serves the caller's appointments as an iCalendar file.
func (h *CalendarHandler) Export(c *gin.Context) {
	ws, ok := currentWorkspace(c)
	if !ok {
		return
	}
	appts, err := ws.Appointments()
	if err != nil {
		h.Logger.Error("export appointments", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Failed to export appointments")
		return
	}

	body, err := ExportICS(appts, h.Cfg.Location(), time.Now())
	if err != nil {
		h.Logger.Error("export appointments", zap.String("user", ws.User()), zap.Error(err))
		utils.InternalServerError(c, "Failed to export appointments")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="appointments.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// ExportICS renders appts as a VCALENDAR. Each appointment becomes a
// 30-minute event starting at its wall-clock time in loc.
func ExportICS(appts []models.Appointment, loc *time.Location, stamp time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Vytara//Appointments//EN")
	cal.SetXWRCalName("Vytara appointments")

	for _, a := range appts {
		start, err := time.ParseInLocation(calendar.DateKeyLayout+" 15:04", a.Date+" "+a.Time, loc)
		if err != nil {
			return "", fmt.Errorf("appointment %s: %w", a.ID, err)
		}
		event := cal.AddEvent(a.ID + "@vytara")
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(exportDuration))
		event.SetSummary(a.Title)
		event.SetDescription(describe(a))
		if a.Facility != "" {
			event.SetLocation(a.Facility)
		}
	}
	return cal.Serialize(), nil
}

func describe(a models.Appointment) string {
	s := "Type: " + a.Type.Label()
	if a.Doctor != "" {
		s += "\nDoctor: " + a.Doctor
	}
	if a.Facility != "" {
		s += "\nFacility: " + a.Facility
	}
	return s
}
