package store

import (
	"sync"

	"vytara-server/internal/models"
)

// MemoryStore keeps appointments in a slice. Its lifetime is the lifetime
// of the workspace that owns it.
type MemoryStore struct {
	mu    sync.RWMutex
	items []models.Appointment
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Upsert replaces in place on id collision, otherwise appends.
func (s *MemoryStore) Upsert(a models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == a.ID {
			a.Seq = s.items[i].Seq
			s.items[i] = a
			return nil
		}
	}
	a.Seq = int64(len(s.items))
	if n := len(s.items); n > 0 && s.items[n-1].Seq >= a.Seq {
		a.Seq = s.items[n-1].Seq + 1
	}
	s.items = append(s.items, a)
	return nil
}

// Remove deletes by id.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return nil
}

// ByDateKey filters by date key.
func (s *MemoryStore) ByDateKey(key string) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, 0)
	for _, a := range s.items {
		if a.Date == key {
			out = append(out, a)
		}
	}
	return out, nil
}

// All returns a copy of the collection.
func (s *MemoryStore) All() ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Appointment, len(s.items))
	copy(out, s.items)
	return out, nil
}

// MemoryProvider keeps one MemoryStore per user.
type MemoryProvider struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

// NewMemoryProvider creates an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{stores: make(map[string]*MemoryStore)}
}

// ForUser returns the user's store, creating it on first use.
func (p *MemoryProvider) ForUser(userID string) AppointmentStore {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.stores[userID]
	if !ok {
		s = NewMemoryStore()
		p.stores[userID] = s
	}
	return s
}

// Discard forgets the user's appointments.
func (p *MemoryProvider) Discard(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stores, userID)
}
