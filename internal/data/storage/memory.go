package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps values in process memory. Several stores sharing one
// MemoryBackend behave like processes sharing one storage file.
type MemoryBackend struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers []chan struct{}
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(ctx context.Context) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string][]byte, len(m.values))
	for k, v := range m.values {
		out[k] = append([]byte(nil), v...)
	}
	return out, nil
}

func (m *MemoryBackend) Save(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, v := range values {
		m.values[k] = append([]byte(nil), v...)
	}
	for _, w := range m.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
	return nil
}

// Changes returns a fresh signal channel per caller
func (m *MemoryBackend) Changes() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{}, 1)
	m.watchers = append(m.watchers, ch)
	return ch
}

func (m *MemoryBackend) Close() error {
	return nil
}
