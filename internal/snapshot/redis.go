package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const maxWatchAttempts = 5

// RedisStore keeps each snapshot under its versioned data key and records
// the current version in a marker key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, ks Keyspace, dest any) (bool, error) {
	ver, err := s.client.Get(ctx, ks.MarkerKey()).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot: redis marker: %w", err)
	}
	if ver != ks.Version {
		stale := Keyspace{Name: ks.Name, Version: ver}
		if err := s.client.Del(ctx, stale.DataKey(), ks.MarkerKey()).Err(); err != nil {
			return false, fmt.Errorf("snapshot: redis discard: %w", err)
		}
		return false, nil
	}
	payload, err := s.client.Get(ctx, ks.DataKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot: redis load: %w", err)
	}
	return true, decode(payload, dest)
}

func (s *RedisStore) Save(ctx context.Context, ks Keyspace, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	_, err = s.SaveRaw(ctx, ks, NextSeq(), raw)
	return err
}

// SaveRaw compares seq against the seq key under WATCH and writes data,
// marker and seq in one MULTI block.
func (s *RedisStore) SaveRaw(ctx context.Context, ks Keyspace, seq int64, payload json.RawMessage) (bool, error) {
	var applied bool
	write := func(tx *redis.Tx) error {
		applied = false
		cur, err := tx.Get(ctx, ks.SeqKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil && seq < cur {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ks.DataKey(), []byte(payload), 0)
			pipe.Set(ctx, ks.MarkerKey(), ks.Version, 0)
			pipe.Set(ctx, ks.SeqKey(), seq, 0)
			return nil
		})
		if err == nil {
			applied = true
		}
		return err
	}
	for attempt := 0; attempt < maxWatchAttempts; attempt++ {
		err := s.client.Watch(ctx, write, ks.SeqKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("snapshot: redis save: %w", err)
		}
		return applied, nil
	}
	return false, fmt.Errorf("snapshot: redis save %s: seq key kept changing", ks.Name)
}
