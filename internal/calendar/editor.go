package calendar

import (
	"errors"
	"fmt"
	"strings"

	"vytara-server/internal/models"
	"vytara-server/internal/validate"
)

// ErrWrongMode is returned when an editor action is not available in the
// dialog's current mode.
var ErrWrongMode = errors.New("calendar: action not available in this dialog mode")

// Host owns the appointment collection. The widget never holds appointment
// data itself; it asks the host to upsert or delete.
type Host interface {
	AddAppointment(a models.Appointment) error
	DeleteAppointment(id string) error
}

// EditorMode is the state of the appointment dialog.
type EditorMode string

const (
	EditorCreate EditorMode = "create"
	EditorView   EditorMode = "view"
	EditorEdit   EditorMode = "edit"
)

// Draft holds the editable fields of the dialog. The date is not part of
// the draft; it is fixed to the clicked day.
type Draft struct {
	Title    string                 `json:"title" validate:"required"`
	Time     string                 `json:"time" validate:"required,clock"`
	Type     models.AppointmentType `json:"type" validate:"required,oneof=consultation follow-up test/scan procedure other"`
	Doctor   string                 `json:"doctor,omitempty"`
	Facility string                 `json:"facility,omitempty"`
}

// DraftOf copies the editable fields of a.
func DraftOf(a models.Appointment) Draft {
	return Draft{Title: a.Title, Time: a.Time, Type: a.Type, Doctor: a.Doctor, Facility: a.Facility}
}

// Editor is the add/view/edit dialog for a single appointment.
type Editor struct {
	host     Host
	newID    func() string
	mode     EditorMode
	date     string
	original models.Appointment
	draft    Draft
	done     bool
}

// NewCreateEditor opens an empty dialog locked to date.
func NewCreateEditor(host Host, date string, newID func() string) *Editor {
	if newID == nil {
		newID = models.NewID
	}
	return &Editor{
		host:  host,
		newID: newID,
		mode:  EditorCreate,
		date:  date,
		draft: Draft{Type: models.DefaultAppointmentType},
	}
}

// NewDetailEditor opens the read-only view of an existing appointment.
func NewDetailEditor(host Host, a models.Appointment) *Editor {
	return &Editor{
		host:     host,
		newID:    models.NewID,
		mode:     EditorView,
		date:     a.Date,
		original: a,
		draft:    DraftOf(a),
	}
}

// Mode returns the dialog mode.
func (e *Editor) Mode() EditorMode { return e.mode }

// Date returns the locked date key.
func (e *Editor) Date() string { return e.date }

// Draft returns the current field values.
func (e *Editor) Draft() Draft { return e.draft }

// Done reports whether a save or delete has completed.
func (e *Editor) Done() bool { return e.done }

// Appointment returns the appointment being viewed or edited.
func (e *Editor) Appointment() (models.Appointment, bool) {
	if e.mode == EditorCreate {
		return models.Appointment{}, false
	}
	return e.original, true
}

// ShowProviderFields reports whether the doctor and facility inputs apply.
func (e *Editor) ShowProviderFields() bool {
	return e.draft.Type.HasProvider()
}

// SetDraft replaces the field values. An empty type falls back to the
// default category.
func (e *Editor) SetDraft(d Draft) error {
	if e.mode == EditorView {
		return ErrWrongMode
	}
	if d.Type == "" {
		d.Type = models.DefaultAppointmentType
	}
	e.draft = d
	return nil
}

// SetType changes the category and clears the provider fields.
func (e *Editor) SetType(t models.AppointmentType) error {
	if e.mode == EditorView {
		return ErrWrongMode
	}
	e.draft.Type = t
	e.draft.Doctor = ""
	e.draft.Facility = ""
	return nil
}

// BeginEdit switches view to edit with a fresh copy of the appointment.
func (e *Editor) BeginEdit() error {
	if e.mode != EditorView {
		return ErrWrongMode
	}
	e.mode = EditorEdit
	e.draft = DraftOf(e.original)
	return nil
}

// Cancel abandons edits and returns to view.
func (e *Editor) Cancel() error {
	if e.mode != EditorEdit {
		return ErrWrongMode
	}
	e.mode = EditorView
	e.draft = DraftOf(e.original)
	return nil
}

// Save validates the draft and asks the host to upsert the result.
func (e *Editor) Save() error {
	if e.mode != EditorCreate && e.mode != EditorEdit {
		return ErrWrongMode
	}
	d := e.draft
	d.Title = strings.TrimSpace(d.Title)
	if err := validate.Struct(d); err != nil {
		return err
	}

	a := models.Appointment{
		Date:     e.date,
		Time:     d.Time,
		Title:    d.Title,
		Type:     d.Type,
		Doctor:   strings.TrimSpace(d.Doctor),
		Facility: strings.TrimSpace(d.Facility),
	}
	if e.mode == EditorCreate {
		a.ID = e.newID()
	} else {
		a.ID = e.original.ID
	}
	a.Normalize()

	if err := e.host.AddAppointment(a); err != nil {
		return fmt.Errorf("save appointment %s: %w", a.ID, err)
	}
	e.original = a
	e.done = true
	return nil
}

// Delete asks the host to remove the appointment being viewed or edited.
func (e *Editor) Delete() error {
	if e.mode != EditorView && e.mode != EditorEdit {
		return ErrWrongMode
	}
	if err := e.host.DeleteAppointment(e.original.ID); err != nil {
		return fmt.Errorf("delete appointment %s: %w", e.original.ID, err)
	}
	e.done = true
	return nil
}
