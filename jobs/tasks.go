package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/movequote/movequote/internal/snapshot"
)

const (
	// QueueSnapshots carries snapshot writes. Retries can run after later
	// tasks, so ordering is enforced by the payload seq, not the queue.
	QueueSnapshots = "snapshots"
	// TaskSnapshotSave is the task type for persisting a collection snapshot.
	TaskSnapshotSave = "snapshot:save"
)

// SnapshotSavePayload is a fully encoded collection snapshot. Seq is taken
// at enqueue time; stores drop payloads older than what they hold.
type SnapshotSavePayload struct {
	Name    string          `json:"name"`
	Version int             `json:"version"`
	Seq     int64           `json:"seq"`
	Data    json.RawMessage `json:"data"`
}

// Keyspace returns the target keyspace of the payload.
func (p SnapshotSavePayload) Keyspace() snapshot.Keyspace {
	return snapshot.Keyspace{Name: p.Name, Version: p.Version}
}

// NewSnapshotSaveTask encodes v for keyspace ks.
func NewSnapshotSaveTask(ks snapshot.Keyspace, v any) (*asynq.Task, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jobs: encode snapshot %s: %w", ks.Name, err)
	}
	payload, err := json.Marshal(SnapshotSavePayload{
		Name:    ks.Name,
		Version: ks.Version,
		Seq:     snapshot.NextSeq(),
		Data:    data,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotSave, payload, asynq.Queue(QueueSnapshots), asynq.MaxRetry(5)), nil
}

// SnapshotSaver writes queued snapshots into a store.
type SnapshotSaver struct {
	Store  snapshot.Store
	Logger *slog.Logger
}

// Handle processes TaskSnapshotSave tasks.
func (s *SnapshotSaver) Handle(ctx context.Context, t *asynq.Task) error {
	if s == nil || s.Store == nil {
		return errors.New("snapshot saver: store not configured")
	}
	var payload SnapshotSavePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("snapshot saver: %v: %w", err, asynq.SkipRetry)
	}
	if payload.Name == "" || len(payload.Data) == 0 {
		return fmt.Errorf("snapshot saver: empty payload: %w", asynq.SkipRetry)
	}
	applied, err := s.Store.SaveRaw(ctx, payload.Keyspace(), payload.Seq, payload.Data)
	if err != nil {
		s.logger().Warn("save snapshot", slog.String("collection", payload.Name), slog.Any("error", err))
		return err
	}
	if !applied {
		s.logger().Info("stale snapshot skipped", slog.String("collection", payload.Name), slog.Int64("seq", payload.Seq))
		return nil
	}
	s.logger().Debug("snapshot saved", slog.String("collection", payload.Name), slog.Int("version", payload.Version))
	return nil
}

func (s *SnapshotSaver) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
