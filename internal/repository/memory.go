package repository

import (
	"context"
	"sync"
)

// Memory keeps blobs in process memory. A positive quota caps the summed
// size of keys and values, the same way browser local storage does.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
	quota int
	used  int
}

func NewMemory(quota int) *Memory {
	return &Memory{
		items: make(map[string][]byte),
		quota: quota,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *Memory) Set(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(key) + len(blob)
	if old, ok := m.items[key]; ok {
		used -= len(key) + len(old)
	}
	if m.quota > 0 && used > m.quota {
		return ErrCapacityExceeded
	}

	m.items[key] = append([]byte(nil), blob...)
	m.used = used
	return nil
}

// Used is the number of bytes counted against the quota.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.used
}

func (m *Memory) Close() error { return nil }
