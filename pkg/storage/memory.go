package storage

import "sync"

// MemoryStore keeps slots in process memory. It backs tests and the
// degraded mode where no durable medium is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Load returns the payload for a slot, or ErrSlotNotFound.
func (m *MemoryStore) Load(slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save stores a copy of the payload under the slot name.
func (m *MemoryStore) Save(slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.slots[slot] = stored
	return nil
}
