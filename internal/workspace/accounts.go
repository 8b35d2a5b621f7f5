package workspace

import (
	"errors"
	"strings"
	"time"

	"vytara-server/internal/models"
	"vytara-server/internal/store"
)

// ErrUsernameTaken is returned when signing up with a registered username.
var ErrUsernameTaken = errors.New("workspace: username already registered")

// Accounts registers and authenticates users on top of an account store.
type Accounts struct {
	store store.AccountStore
}

// NewAccounts wraps s. A nil store keeps accounts in memory.
func NewAccounts(s store.AccountStore) *Accounts {
	if s == nil {
		s = store.NewMemoryAccounts()
	}
	return &Accounts{store: s}
}

// Register stores a new account with a hashed password.
func (a *Accounts) Register(username, email, password string, profile models.UserProfile) (models.Account, error) {
	acc := models.Account{
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Profile:   profile,
		CreatedAt: time.Now(),
	}
	if err := acc.SetPassword(password); err != nil {
		return models.Account{}, err
	}

	if err := a.store.Create(acc); err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			return models.Account{}, ErrUsernameTaken
		}
		return models.Account{}, err
	}
	return acc, nil
}

// Authenticate checks a login. Registered users must match their password;
// unknown usernames are let in with the demo profile.
func (a *Accounts) Authenticate(username, password string) (models.UserProfile, error) {
	acc, ok, err := a.store.Get(strings.TrimSpace(username))
	if err != nil {
		return models.UserProfile{}, err
	}
	if !ok {
		return models.DemoProfile(), nil
	}
	if !acc.CheckPassword(password) {
		return models.UserProfile{}, models.ErrInvalidCredentials
	}
	return acc.Profile, nil
}

// Lookup returns the account for username.
func (a *Accounts) Lookup(username string) (models.Account, bool, error) {
	return a.store.Get(strings.TrimSpace(username))
}
