package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vytara-server/internal/models"
)

// GormStore persists one owner's appointments through gorm.
type GormStore struct {
	DB      *gorm.DB
	OwnerID string
}

// Upsert saves a, keeping the insertion sequence of an existing record.
func (s *GormStore) Upsert(a models.Appointment) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Appointment
		err := tx.First(&existing, "id = ?", a.ID).Error
		switch {
		case err == nil:
			if existing.OwnerID != s.OwnerID {
				return ErrConflict
			}
			a.Seq = existing.Seq
			a.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxSeq int64
			if err := tx.Model(&models.Appointment{}).
				Where("owner_id = ?", s.OwnerID).
				Select("COALESCE(MAX(seq), -1)").
				Scan(&maxSeq).Error; err != nil {
				return fmt.Errorf("read sequence: %w", err)
			}
			a.Seq = maxSeq + 1
		default:
			return fmt.Errorf("look up appointment %s: %w", a.ID, err)
		}

		a.OwnerID = s.OwnerID
		if err := tx.Save(&a).Error; err != nil {
			return fmt.Errorf("save appointment %s: %w", a.ID, err)
		}
		return nil
	})
}

// Remove deletes by id within the owner's rows.
func (s *GormStore) Remove(id string) error {
	err := s.DB.Where("id = ? AND owner_id = ?", id, s.OwnerID).Delete(&models.Appointment{}).Error
	if err != nil {
		return fmt.Errorf("delete appointment %s: %w", id, err)
	}
	return nil
}

// ByDateKey filters by date key in insertion order.
func (s *GormStore) ByDateKey(key string) ([]models.Appointment, error) {
	var out []models.Appointment
	err := s.DB.Where("owner_id = ? AND date = ?", s.OwnerID, key).Order("seq asc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("fetch appointments for %s: %w", key, err)
	}
	return out, nil
}

// All returns the owner's appointments in insertion order.
func (s *GormStore) All() ([]models.Appointment, error) {
	var out []models.Appointment
	if err := s.DB.Where("owner_id = ?", s.OwnerID).Order("seq asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}
	return out, nil
}

// GormProvider scopes a shared database by owner.
type GormProvider struct {
	DB *gorm.DB
}

// ForUser returns a store bound to userID.
func (p *GormProvider) ForUser(userID string) AppointmentStore {
	return &GormStore{DB: p.DB, OwnerID: userID}
}

// Discard is a no-op; persisted appointments outlive the session.
func (p *GormProvider) Discard(string) {}
