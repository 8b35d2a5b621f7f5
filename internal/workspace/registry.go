package workspace

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"vytara-server/internal/models"
	"vytara-server/internal/store"
)

// ErrNoWorkspace is returned when a user has no open workspace, e.g. after
// logout or a server restart.
var ErrNoWorkspace = errors.New("workspace: no open workspace for user")

// Registry tracks the open workspace of every logged-in user.
type Registry struct {
	stores store.Provider
	opts   Options

	mu         sync.RWMutex
	workspaces map[string]*Workspace
}

// NewRegistry creates a registry drawing appointment stores from stores.
func NewRegistry(stores store.Provider, opts Options) *Registry {
	return &Registry{
		stores:     stores,
		opts:       opts.withDefaults(),
		workspaces: make(map[string]*Workspace),
	}
}

// Open starts a fresh workspace for user, replacing any open one. In-memory
// appointments from a previous session are dropped.
func (r *Registry) Open(user string, profile models.UserProfile) *Workspace {
	r.stores.Discard(user)
	ws := New(user, profile, r.stores.ForUser(user), r.opts)

	r.mu.Lock()
	r.workspaces[user] = ws
	r.mu.Unlock()

	r.opts.Logger.Info("workspace opened", zap.String("user", user))
	return ws
}

// Get returns the open workspace for user.
func (r *Registry) Get(user string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.workspaces[user]
	if !ok {
		return nil, ErrNoWorkspace
	}
	return ws, nil
}

// Close discards the user's workspace.
func (r *Registry) Close(user string) {
	r.mu.Lock()
	delete(r.workspaces, user)
	r.mu.Unlock()
	r.stores.Discard(user)
	r.opts.Logger.Info("workspace closed", zap.String("user", user))
}
