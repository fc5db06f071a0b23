package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movequote/movequote/internal/snapshot"
)

type item struct {
	ID     string  `json:"id"`
	Points float64 `json:"points"`
}

func TestSnapshotSaveTaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	ks := snapshot.Keyspace{Name: "item_points", Version: 2}
	want := []item{{ID: "sofa-3", Points: 22}, {ID: "bed-double", Points: 25}}

	task, err := NewSnapshotSaveTask(ks, want)
	require.NoError(t, err)
	assert.Equal(t, TaskSnapshotSave, task.Type())

	store := snapshot.NewMemoryStore()
	saver := &SnapshotSaver{Store: store}
	require.NoError(t, saver.Handle(ctx, task))

	var got []item
	found, err := store.Load(ctx, ks, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestSnapshotSaverKeepsNewerSnapshotWhenOlderTaskRetries(t *testing.T) {
	ctx := context.Background()
	ks := snapshot.Keyspace{Name: "item_points", Version: 1}

	first, err := NewSnapshotSaveTask(ks, []item{{ID: "sofa-3", Points: 20}})
	require.NoError(t, err)
	second, err := NewSnapshotSaveTask(ks, []item{{ID: "sofa-3", Points: 24}})
	require.NoError(t, err)

	store := snapshot.NewMemoryStore()
	saver := &SnapshotSaver{Store: store, Logger: discardLogger()}
	require.NoError(t, saver.Handle(ctx, second))
	require.NoError(t, saver.Handle(ctx, first))

	var got []item
	found, err := store.Load(ctx, ks, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []item{{ID: "sofa-3", Points: 24}}, got)
}

func TestSnapshotSaverSkipsRetryOnBadPayload(t *testing.T) {
	saver := &SnapshotSaver{Store: snapshot.NewMemoryStore()}

	err := saver.Handle(context.Background(), asynq.NewTask(TaskSnapshotSave, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = saver.Handle(context.Background(), asynq.NewTask(TaskSnapshotSave, []byte(`{"name":""}`)))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSnapshotSaverRequiresStore(t *testing.T) {
	var saver *SnapshotSaver
	assert.Error(t, saver.Handle(context.Background(), asynq.NewTask(TaskSnapshotSave, nil)))
}

type fakeInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (f fakeInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return f.info, f.err
}

func serveHealth(h *Handler) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	return rr
}

func TestHealth(t *testing.T) {
	rr := serveHealth(NewHandler(nil, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"queue":"snapshots","pending":0}`, rr.Body.String())

	rr = serveHealth(NewHandler(fakeInspector{info: &asynq.QueueInfo{Queue: "snapshots", Pending: 3}}, nil))
	assert.JSONEq(t, `{"queue":"snapshots","pending":3}`, rr.Body.String())
}

func TestHealthUnavailable(t *testing.T) {
	h := NewHandler(fakeInspector{err: errors.New("redis down")}, nil)
	h.logger = discardLogger()
	rr := serveHealth(h)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
