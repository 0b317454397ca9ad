package session

import (
	"context"
	"sync"

	"atelier-storefront/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an in-process Repository. State is lost on restart; used
// as the default backend and in tests.
func NewMemory() Repository {
	return &memoryRepo{values: make(map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *memoryRepo) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	r.values[key] = stored
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}
