// Package snapshot persists whole collections (catalog, season rules, rate
// table) as JSON documents under versioned keys. A stored document whose
// version marker differs from the caller's Keyspace is discarded on load,
// never migrated.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
)

const keyPrefix = "movequote"

// Keyspace names one persisted collection and the shape version its
// payload was written with.
type Keyspace struct {
	Name    string
	Version int
}

// DataKey is the key holding the serialised payload.
func (k Keyspace) DataKey() string {
	return fmt.Sprintf("%s:%s:v%d", keyPrefix, k.Name, k.Version)
}

// MarkerKey holds the version last written for the collection.
func (k Keyspace) MarkerKey() string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, k.Name)
}

// SeqKey holds the write sequence of the stored payload.
func (k Keyspace) SeqKey() string {
	return fmt.Sprintf("%s:%s:seq", keyPrefix, k.Name)
}

// Store loads and saves collection snapshots.
type Store interface {
	// Load decodes the snapshot into dest. found is false when nothing is
	// stored or the stored version does not match ks.Version.
	Load(ctx context.Context, ks Keyspace, dest any) (found bool, err error)
	// Save replaces the snapshot with v under a fresh NextSeq.
	Save(ctx context.Context, ks Keyspace, v any) error
	// SaveRaw replaces the snapshot with an already encoded payload unless
	// the stored payload carries a higher seq. applied is false when the
	// write was skipped as stale.
	SaveRaw(ctx context.Context, ks Keyspace, seq int64, payload json.RawMessage) (applied bool, err error)
}

func encode(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return raw, nil
}

func decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("snapshot: decode: %w", err)
	}
	return nil
}

// Persister writes a full collection snapshot. Implementations may write
// synchronously (StorePersister) or hand the payload to a queue.
type Persister interface {
	Persist(ctx context.Context, ks Keyspace, v any) error
}

// StorePersister persists straight into a Store.
type StorePersister struct {
	Store Store
}

func (p StorePersister) Persist(ctx context.Context, ks Keyspace, v any) error {
	if p.Store == nil {
		return nil
	}
	return p.Store.Save(ctx, ks, v)
}
