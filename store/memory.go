package store

import (
	"context"
	"sync"
)

// Memory keeps weights in process. It is the default for experiments that
// do not need to keep what they learn.
type Memory struct {
	mu      sync.RWMutex
	weights map[string]map[string]float64
}

func NewMemory() *Memory {
	return &Memory{weights: make(map[string]map[string]float64)}
}

func (m *Memory) ReadWeights(_ context.Context, key string) (map[string]float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.weights[key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyWeights(w), nil
}

func (m *Memory) WriteWeights(_ context.Context, key string, weights map[string]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.weights[key] = copyWeights(weights)
	return nil
}

func (m *Memory) Close() error { return nil }
