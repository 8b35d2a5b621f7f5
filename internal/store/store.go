// Package store holds appointment collections. The in-memory store is the
// default; the gorm store is an optional adapter behind the same interface.
package store

import (
	"errors"
	"sort"

	"vytara-server/internal/models"
)

// ErrConflict is returned when an upsert names an id owned by another user.
var ErrConflict = errors.New("store: appointment id belongs to another owner")

// AppointmentStore is an unordered collection of appointments keyed by id.
type AppointmentStore interface {
	// Upsert replaces the appointment with the same id, or appends it.
	Upsert(a models.Appointment) error
	// Remove deletes the appointment with id; absent ids are a no-op.
	Remove(id string) error
	// ByDateKey returns the appointments on date key in stored order.
	ByDateKey(key string) ([]models.Appointment, error)
	// All returns every appointment in stored order.
	All() ([]models.Appointment, error)
}

// Provider hands out one appointment store per user.
type Provider interface {
	ForUser(userID string) AppointmentStore
	// Discard drops whatever the provider holds for userID in memory.
	Discard(userID string)
}

// SortByTime orders same-day appointments by time. Equal times keep their
// stored order.
func SortByTime(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].Time < appts[j].Time
	})
}

// SortByDateTime orders appointments by date, then time.
func SortByDateTime(appts []models.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
