package progress

import (
	"context"
	"maps"
	"sync"
)

// MemoryKV is an in-process KV. GetErr and SetErr, when set, are returned
// by every call.
type MemoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	GetErr error
	SetErr error
	Sets   int
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

// Snapshot returns a copy of the stored values.
func (m *MemoryKV) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}
