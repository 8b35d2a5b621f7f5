package models

import (
	"time"
)

// AppointmentType is the closed set of appointment categories.
type AppointmentType string

const (
	TypeConsultation AppointmentType = "consultation"
	TypeFollowUp     AppointmentType = "follow-up"
	TypeTestScan     AppointmentType = "test/scan"
	TypeProcedure    AppointmentType = "procedure"
	TypeOther        AppointmentType = "other"
)

// DefaultAppointmentType is preselected in the add dialog.
const DefaultAppointmentType = TypeConsultation

// AppointmentTypes lists every category in display order.
var AppointmentTypes = []AppointmentType{TypeConsultation, TypeFollowUp, TypeTestScan, TypeProcedure, TypeOther}

// Valid reports whether t belongs to the closed set.
func (t AppointmentType) Valid() bool {
	for _, known := range AppointmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasProvider reports whether doctor and facility are meaningful for t.
func (t AppointmentType) HasProvider() bool {
	return t != TypeOther
}

// Label renders the type for display, e.g. "test/scan" -> "Test / Scan".
func (t AppointmentType) Label() string {
	if t == "" {
		return "Not specified"
	}
	words := []rune{}
	upper := true
	for _, r := range string(t) {
		switch {
		case r == '/':
			words = append(words, ' ', '/', ' ')
			upper = true
			continue
		case r == ' ':
			upper = true
		case upper && r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
			upper = false
		default:
			upper = false
		}
		words = append(words, r)
	}
	return string(words)
}

// Appointment is a single calendar entry. Date is a local date key
// (YYYY-MM-DD) and Time a zero-padded 24-hour HH:MM wall-clock time.
type Appointment struct {
	ID       string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OwnerID  string          `gorm:"size:100;index" json:"-"`
	Date     string          `gorm:"size:10;index" json:"date" validate:"required,datekey"`
	Time     string          `gorm:"size:5" json:"time" validate:"required,clock"`
	Title    string          `gorm:"size:255;not null" json:"title" validate:"required"`
	Type     AppointmentType `gorm:"size:20" json:"type" validate:"required,oneof=consultation follow-up test/scan procedure other"`
	Doctor   string          `gorm:"size:255" json:"doctor,omitempty"`
	Facility string          `gorm:"size:255" json:"facility,omitempty"`

	// Seq preserves insertion order for stable same-time ordering.
	Seq       int64     `gorm:"index" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Normalize drops provider fields for types that do not use them.
func (a *Appointment) Normalize() {
	if !a.Type.HasProvider() {
		a.Doctor = ""
		a.Facility = ""
	}
}
