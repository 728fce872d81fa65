// ABOUTME: Tests for the sync engine: cursor semantics, push/pull counts,
// ABOUTME: failure handling, and the concurrent-sync guard.

package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

// fakeStore serves one canned delta and records every applied record.
type fakeStore struct {
	delta *models.Delta

	appliedNotes      []*models.Note
	appliedFolders    []*models.Folder
	appliedWorkspaces []*models.Workspace

	notes      []*models.Note
	folders    []*models.Folder
	workspaces []*models.Workspace
}

func newFakeStore() *fakeStore {
	return &fakeStore{delta: &models.Delta{}}
}

func (f *fakeStore) GetSyncDelta(since int64) (*models.Delta, error) { return f.delta, nil }

func (f *fakeStore) ApplyRemoteNote(n *models.Note) error {
	f.appliedNotes = append(f.appliedNotes, n)
	return nil
}

func (f *fakeStore) ApplyRemoteFolder(folder *models.Folder) error {
	f.appliedFolders = append(f.appliedFolders, folder)
	return nil
}

func (f *fakeStore) ApplyRemoteWorkspace(w *models.Workspace) error {
	f.appliedWorkspaces = append(f.appliedWorkspaces, w)
	return nil
}

func (f *fakeStore) GetNotes() ([]*models.Note, error)           { return f.notes, nil }
func (f *fakeStore) GetFolders() ([]*models.Folder, error)       { return f.folders, nil }
func (f *fakeStore) GetWorkspaces() ([]*models.Workspace, error) { return f.workspaces, nil }

// fakeExchanger captures the request and returns a canned response.
type fakeExchanger struct {
	req     *Request
	resp    *Response
	err     error
	release chan struct{} // when non-nil, Exchange blocks until closed
}

func (f *fakeExchanger) Exchange(ctx context.Context, req *Request) (*Response, error) {
	f.req = req
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestEngine(store Store, cfg *Config, ex Exchanger) (*Engine, *[]Config) {
	e := NewEngine(store, cfg, zerolog.Nop())
	e.newExchanger = func(endpoint, key string) Exchanger { return ex }
	var persisted []Config
	e.persistConfig = func(c *Config) error {
		persisted = append(persisted, *c)
		return nil
	}
	return e, &persisted
}

func configured() *Config {
	return &Config{Endpoint: "https://sync.example.com", Key: "k", LastSyncedAt: 100}
}

func TestPerformSyncNotConfigured(t *testing.T) {
	e, _ := newTestEngine(newFakeStore(), &Config{}, &fakeExchanger{})
	_, err := e.PerformSync(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPerformSyncRoundTrip(t *testing.T) {
	store := newFakeStore()
	localNote := models.NewNote("local", uuid.Nil, uuid.New())
	localNote.Version = 2
	store.delta.Notes = []*models.Note{localNote}
	store.notes = []*models.Note{localNote}

	remoteWS := models.NewWorkspace("remote ws", "")
	remoteNote := models.NewNote("remote", uuid.Nil, remoteWS.ID)
	remoteNote.Version = 3
	ex := &fakeExchanger{resp: &Response{
		ServerTime: 500,
		Notes:      []NoteRecord{noteToWire(remoteNote)},
		Workspaces: []WorkspaceRecord{workspaceToWire(remoteWS)},
	}}

	e, persisted := newTestEngine(store, configured(), ex)
	result, err := e.PerformSync(context.Background())
	require.NoError(t, err)

	// Request carries the cursor and the local delta.
	require.NotNil(t, ex.req)
	assert.Equal(t, int64(100), ex.req.LastSyncTime)
	require.Len(t, ex.req.Notes, 1)
	assert.Equal(t, localNote.ID.String(), ex.req.Notes[0].ID)
	assert.Equal(t, int64(2), ex.req.Notes[0].Version)

	// Remote records land through the apply paths, version intact.
	require.Len(t, store.appliedNotes, 1)
	assert.Equal(t, int64(3), store.appliedNotes[0].Version)
	require.Len(t, store.appliedWorkspaces, 1)

	// Cursor advances to the server's clock and is persisted.
	assert.Equal(t, int64(500), e.LastSyncedAt())
	require.Len(t, *persisted, 1)
	assert.Equal(t, int64(500), (*persisted)[0].LastSyncedAt)

	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 2, result.Pulled)
	assert.False(t, e.HasUnsyncedChanges())
}

func TestPerformSyncTwiceIsIdempotent(t *testing.T) {
	store := newFakeStore()
	localNote := models.NewNote("local", uuid.Nil, uuid.New())
	localNote.Version = 2
	store.delta.Notes = []*models.Note{localNote}
	store.notes = []*models.Note{localNote}

	remoteNote := models.NewNote("remote", uuid.Nil, uuid.New())
	remoteNote.Version = 3
	ex := &fakeExchanger{resp: &Response{
		ServerTime: 500,
		Notes:      []NoteRecord{noteToWire(remoteNote)},
	}}

	e, persisted := newTestEngine(store, configured(), ex)
	_, err := e.PerformSync(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(500), e.LastSyncedAt())

	// Neither side has changed since: the delta window past the new cursor
	// is empty and the peer's clock has not advanced.
	store.delta = &models.Delta{}
	ex.resp = &Response{ServerTime: 500}

	result, err := e.PerformSync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(500), ex.req.LastSyncTime)
	assert.Empty(t, ex.req.Notes)
	assert.Equal(t, 0, result.Pushed)
	assert.Equal(t, 0, result.Pulled)
	assert.Len(t, store.appliedNotes, 1) // only the first round applied

	// Cursor is bit-for-bit stable across the no-op round.
	assert.Equal(t, int64(500), e.LastSyncedAt())
	require.Len(t, *persisted, 2)
	assert.Equal(t, (*persisted)[0].LastSyncedAt, (*persisted)[1].LastSyncedAt)
}

func TestPerformSyncFailurePreservesCursor(t *testing.T) {
	ex := &fakeExchanger{err: errors.New("connection refused")}
	e, persisted := newTestEngine(newFakeStore(), configured(), ex)

	_, err := e.PerformSync(context.Background())
	require.Error(t, err)
	assert.Equal(t, int64(100), e.LastSyncedAt())
	assert.Empty(t, *persisted)
	assert.False(t, e.IsSyncing())
}

func TestPerformSyncRejectsConcurrentCall(t *testing.T) {
	ex := &fakeExchanger{
		resp:    &Response{ServerTime: 200},
		release: make(chan struct{}),
	}
	e, _ := newTestEngine(newFakeStore(), configured(), ex)

	done := make(chan error, 1)
	go func() {
		_, err := e.PerformSync(context.Background())
		done <- err
	}()

	require.Eventually(t, e.IsSyncing, time.Second, time.Millisecond)
	_, err := e.PerformSync(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(ex.release)
	require.NoError(t, <-done)
	assert.False(t, e.IsSyncing())
}

func TestSetConfigKeepsCursor(t *testing.T) {
	e, persisted := newTestEngine(newFakeStore(), configured(), &fakeExchanger{})
	require.NoError(t, e.SetConfig("https://other.example.com", "k2"))

	require.Len(t, *persisted, 1)
	assert.Equal(t, int64(100), (*persisted)[0].LastSyncedAt)
	assert.Equal(t, "https://other.example.com", (*persisted)[0].Endpoint)
}

func TestRecomputeUnsynced(t *testing.T) {
	e, _ := newTestEngine(newFakeStore(), configured(), &fakeExchanger{})

	stale := models.NewNote("old", uuid.Nil, uuid.New())
	stale.UpdatedAt = 50
	assert.False(t, e.RecomputeUnsynced([]*models.Note{stale}, nil))

	fresh := models.NewFolder("new", uuid.Nil, uuid.New())
	fresh.UpdatedAt = 150
	assert.True(t, e.RecomputeUnsynced([]*models.Note{stale}, []*models.Folder{fresh}))
	assert.True(t, e.HasUnsyncedChanges())
}

func TestRecomputeUnsyncedNeverSynced(t *testing.T) {
	cfg := configured()
	cfg.LastSyncedAt = 0
	e, _ := newTestEngine(newFakeStore(), cfg, &fakeExchanger{})

	n := models.NewNote("anything", uuid.Nil, uuid.New())
	assert.False(t, e.RecomputeUnsynced([]*models.Note{n}, nil))
}
