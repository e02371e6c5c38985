// Package store provides the key-value persistence backends: in-memory,
// file-backed, sqlite and postgres. All of them store whole serialized JSON
// documents per key, last write wins.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/ofertare/mobila/internal/domain"
)

// Memory is an ephemeral in-process store, used in tests and for throwaway
// sessions.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("%w: key %q", domain.ErrNotFound, key)
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
