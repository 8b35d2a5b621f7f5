package store

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"vytara-server/internal/models"
)

// ErrAccountExists is returned when creating an account whose username is
// already registered.
var ErrAccountExists = errors.New("store: account already exists")

// AccountStore keeps registered accounts keyed by username.
type AccountStore interface {
	Create(acc models.Account) error
	// Get reports false when no account has username.
	Get(username string) (models.Account, bool, error)
}

// MemoryAccounts keeps accounts for the life of the process.
type MemoryAccounts struct {
	mu    sync.RWMutex
	users map[string]models.Account
}

// NewMemoryAccounts creates an empty account store.
func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{users: make(map[string]models.Account)}
}

func (s *MemoryAccounts) Create(acc models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[acc.Username]; ok {
		return ErrAccountExists
	}
	s.users[acc.Username] = acc
	return nil
}

func (s *MemoryAccounts) Get(username string) (models.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.users[username]
	return acc, ok, nil
}

// GormAccounts persists accounts so registrations survive a restart.
type GormAccounts struct {
	DB *gorm.DB
}

func (s *GormAccounts) Create(acc models.Account) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Account{}).Where("username = ?", acc.Username).Count(&n).Error; err != nil {
			return fmt.Errorf("look up account %s: %w", acc.Username, err)
		}
		if n > 0 {
			return ErrAccountExists
		}
		if err := tx.Create(&acc).Error; err != nil {
			return fmt.Errorf("create account %s: %w", acc.Username, err)
		}
		return nil
	})
}

func (s *GormAccounts) Get(username string) (models.Account, bool, error) {
	var acc models.Account
	err := s.DB.First(&acc, "username = ?", username).Error
	switch {
	case err == nil:
		return acc, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.Account{}, false, nil
	default:
		return models.Account{}, false, fmt.Errorf("fetch account %s: %w", username, err)
	}
}
