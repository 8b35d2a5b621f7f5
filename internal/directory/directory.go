// Package directory lists the hospitals, diagnostic labs and pharmacies a
// user can search, and turns a booking with one of them into an
// appointment.
package directory

import (
	"errors"
	"strings"

	"vytara-server/internal/models"
	"vytara-server/internal/validate"
)

var (
	ErrUnknownKind      = errors.New("directory: unknown provider kind")
	ErrProviderNotFound = errors.New("directory: provider not found")
	ErrNotBookable      = errors.New("directory: provider does not take bookings")
)

// Directory is a read-only set of provider listings.
type Directory struct {
	listings map[models.ProviderKind][]models.Provider
}

// New returns the seeded directory.
func New() *Directory {
	return &Directory{listings: map[models.ProviderKind][]models.Provider{
		models.KindHospital: models.SeedHospitals(),
		models.KindLab:      models.SeedLabs(),
		models.KindPharmacy: models.SeedPharmacies(),
	}}
}

// Search returns the providers of kind whose name or any service contains
// q, ignoring case. An empty q lists everything.
func (d *Directory) Search(kind models.ProviderKind, q string) ([]models.Provider, error) {
	list, ok := d.listings[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Provider, 0, len(list))
	for _, p := range list {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p models.Provider, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, s := range p.Services {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// Find returns the provider of kind with id.
func (d *Directory) Find(kind models.ProviderKind, id string) (models.Provider, error) {
	list, ok := d.listings[kind]
	if !ok {
		return models.Provider{}, ErrUnknownKind
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Provider{}, ErrProviderNotFound
}

// Booking is a request to see a provider for one of its services.
type Booking struct {
	Date    string `json:"date" validate:"required,datekey"`
	Time    string `json:"time" validate:"required,clock"`
	Service string `json:"service" validate:"required"`
}

// Book builds the appointment for b with p, titled "<service> at <provider>"
// with the provider as facility. today is the caller's local date key;
// earlier dates are refused.
func Book(p models.Provider, b Booking, today string) (models.Appointment, error) {
	if !p.Kind.Bookable() {
		return models.Appointment{}, ErrNotBookable
	}
	if err := validate.Struct(b); err != nil {
		return models.Appointment{}, err
	}

	fe := &validate.FieldErrors{}
	if b.Date < today {
		fe.Add("date", "date cannot be in the past")
	}
	service, ok := offered(p, b.Service)
	if !ok {
		fe.Add("service", p.Name+" does not offer "+strings.TrimSpace(b.Service))
	}
	if err := fe.OrNil(); err != nil {
		return models.Appointment{}, err
	}

	a := models.Appointment{
		ID:       models.NewID(),
		Date:     b.Date,
		Time:     b.Time,
		Title:    service + " at " + p.Name,
		Type:     p.Kind.BookingType(),
		Facility: p.Name,
	}
	a.Normalize()
	return a, nil
}

// offered matches name against p's services ignoring case and returns the
// listed spelling.
func offered(p models.Provider, name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, s := range p.Services {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}
