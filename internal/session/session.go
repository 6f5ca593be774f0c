// Package session holds the signed-in identity. A Store is one cell
// with at most one User, replaced wholesale on every write: last writer
// wins, never transactional, the in-process analogue of a browser tab's
// session storage. The Registry keys one cell per active session so
// each signed-in client has its own.
package session

import (
	"context"
	"sync"

	"github.com/jobport/jobport/internal/models"
)

// Store is the injectable identity cell consumed by anything that
// needs the current user. Get returns (nil, nil) when no user is
// signed in.
type Store interface {
	Get(ctx context.Context) (*models.User, error)
	Set(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}

// Memory is a single in-process cell.
type Memory struct {
	mu   sync.RWMutex
	user *models.User
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(ctx context.Context) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user, nil
}

func (m *Memory) Set(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	return nil
}

// Registry tracks one cell per session id.
type Registry struct {
	mu    sync.RWMutex
	cells map[string]*Memory
}

func NewRegistry() *Registry {
	return &Registry{cells: make(map[string]*Memory)}
}

// Create opens a cell for a fresh session holding u.
func (r *Registry) Create(ctx context.Context, id string, u *models.User) (Store, error) {
	cell := NewMemory()
	if err := cell.Set(ctx, u); err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.cells[id] = cell
	r.mu.Unlock()
	return cell, nil
}

// Cell returns the store for an active session, or false if the
// session does not exist (signed out or never signed in).
func (r *Registry) Cell(id string) (Store, bool) {
	r.mu.RLock()
	cell, ok := r.cells[id]
	r.mu.RUnlock()
	return cell, ok
}

// Delete ends a session; subsequent lookups report absent.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.cells, id)
	r.mu.Unlock()
}
