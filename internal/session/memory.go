package session

import (
	"context"
	"sync"
)

type memoryRegistry struct {
	mu     sync.RWMutex
	active map[string]struct{}
}

// NewMemory returns a Registry held in process memory. It is lost on restart.
func NewMemory() Registry {
	return &memoryRegistry{
		active: map[string]struct{}{},
	}
}

func (r *memoryRegistry) Activate(_ context.Context, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active[user] = struct{}{}
	return nil
}

func (r *memoryRegistry) Deactivate(_ context.Context, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.active, user)
	return nil
}

func (r *memoryRegistry) IsActive(_ context.Context, user string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.active[user]
	return ok, nil
}
