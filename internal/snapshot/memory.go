package snapshot

import (
	"context"
	"encoding/json"
	"sync"
)

type memoryEntry struct {
	version int
	seq     int64
	payload []byte
}

// MemoryStore keeps snapshots in process; used for tests and the
// STORE_DRIVER=memory development mode.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Load(_ context.Context, ks Keyspace, dest any) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[ks.Name]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if entry.version != ks.Version {
		m.mu.Lock()
		delete(m.entries, ks.Name)
		m.mu.Unlock()
		return false, nil
	}
	return true, decode(entry.payload, dest)
}

func (m *MemoryStore) Save(ctx context.Context, ks Keyspace, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	_, err = m.SaveRaw(ctx, ks, NextSeq(), raw)
	return err
}

func (m *MemoryStore) SaveRaw(_ context.Context, ks Keyspace, seq int64, payload json.RawMessage) (bool, error) {
	buf := make([]byte, len(payload))
	copy(buf, payload)
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.entries[ks.Name]; ok && seq < cur.seq {
		return false, nil
	}
	m.entries[ks.Name] = memoryEntry{version: ks.Version, seq: seq, payload: buf}
	return true, nil
}
