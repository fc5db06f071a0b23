package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movequote/movequote/internal/platform/db"
)

// Migrations creates the snapshot table.
var Migrations = []db.Migration{
	{
		Version: 1,
		Name:    "create_snapshots",
		SQL: `CREATE TABLE IF NOT EXISTS snapshots (
	name       TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	{
		Version: 2,
		Name:    "add_snapshot_seq",
		SQL:     `ALTER TABLE snapshots ADD COLUMN IF NOT EXISTS seq BIGINT NOT NULL DEFAULT 0`,
	},
}

// PostgresStore keeps one row per collection. The version column plays
// the role of the marker key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a pool. Callers run Migrations first.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Load(ctx context.Context, ks Keyspace, dest any) (bool, error) {
	var (
		version int
		payload []byte
	)
	err := s.pool.QueryRow(ctx, `SELECT version, payload FROM snapshots WHERE name = $1`, ks.Name).Scan(&version, &payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot: postgres load: %w", err)
	}
	if version != ks.Version {
		if _, err := s.pool.Exec(ctx, `DELETE FROM snapshots WHERE name = $1 AND version = $2`, ks.Name, version); err != nil {
			return false, fmt.Errorf("snapshot: postgres discard: %w", err)
		}
		return false, nil
	}
	return true, decode(payload, dest)
}

func (s *PostgresStore) Save(ctx context.Context, ks Keyspace, v any) error {
	raw, err := encode(v)
	if err != nil {
		return err
	}
	_, err = s.SaveRaw(ctx, ks, NextSeq(), raw)
	return err
}

// SaveRaw upserts the row; the conflict branch only fires when the stored
// seq is not newer.
func (s *PostgresStore) SaveRaw(ctx context.Context, ks Keyspace, seq int64, payload json.RawMessage) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO snapshots (name, version, seq, payload, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (name) DO UPDATE
		SET version = EXCLUDED.version, seq = EXCLUDED.seq, payload = EXCLUDED.payload, updated_at = now()
		WHERE snapshots.seq <= EXCLUDED.seq`,
		ks.Name, ks.Version, seq, []byte(payload))
	if err != nil {
		return false, fmt.Errorf("snapshot: postgres save: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
