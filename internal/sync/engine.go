// ABOUTME: Sync reconciliation engine: watermark delta exchange with a peer.
// ABOUTME: Store-side last-writer-wins merge; cursor advances only on success.

package sync

import (
	"context"
	"errors"
	"sync"

	"github.com/lumenote/lumenote/internal/models"
	"github.com/rs/zerolog"
)

// ErrNotConfigured means endpoint or credential is missing. Callers treat
// it as a quiet no-op, not a failure.
var ErrNotConfigured = errors.New("sync not configured")

// ErrSyncInProgress is returned when PerformSync is invoked while a sync is
// already running. The engine guards this internally; callers need not
// check IsSyncing first.
var ErrSyncInProgress = errors.New("sync already in progress")

// Store is the slice of the record store the engine depends on.
type Store interface {
	GetSyncDelta(since int64) (*models.Delta, error)
	ApplyRemoteNote(*models.Note) error
	ApplyRemoteFolder(*models.Folder) error
	ApplyRemoteWorkspace(*models.Workspace) error
	GetNotes() ([]*models.Note, error)
	GetFolders() ([]*models.Folder, error)
	GetWorkspaces() ([]*models.Workspace, error)
}

// Result is one completed sync round: what moved and the reconciled
// working set re-read from the store.
type Result struct {
	ServerTime int64
	Pushed     int
	Pulled     int

	Notes      []*models.Note
	Folders    []*models.Folder
	Workspaces []*models.Workspace
}

type Engine struct {
	mu          sync.Mutex
	syncing     bool
	hasUnsynced bool

	store Store
	cfg   *Config
	log   zerolog.Logger

	// newExchanger builds the transport for one round from current config;
	// swapped in tests.
	newExchanger func(endpoint, key string) Exchanger
	// persistConfig writes the cursor through to local configuration.
	persistConfig func(*Config) error
}

func NewEngine(store Store, cfg *Config, log zerolog.Logger) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		log:   log,
		newExchanger: func(endpoint, key string) Exchanger {
			return NewClient(endpoint, key, nil)
		},
		persistConfig: SaveConfig,
	}
}

func (e *Engine) IsSyncing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncing
}

func (e *Engine) LastSyncedAt() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.LastSyncedAt
}

func (e *Engine) HasUnsyncedChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasUnsynced
}

// SetConfig updates endpoint and credential and persists them. The cursor
// is kept: reconfiguring the same peer must not replay all history.
func (e *Engine) SetConfig(endpoint, key string) error {
	e.mu.Lock()
	e.cfg.Endpoint = endpoint
	e.cfg.Key = key
	cfg := *e.cfg
	e.mu.Unlock()
	return e.persistConfig(&cfg)
}

// RecomputeUnsynced re-derives the advisory "has unsynced changes" flag
// from the in-memory working set. It never gates whether a sync may run.
func (e *Engine) RecomputeUnsynced(notes []*models.Note, folders []*models.Folder) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.hasUnsynced = false
	if !e.cfg.IsConfigured() || e.cfg.LastSyncedAt == 0 {
		return false
	}
	for _, n := range notes {
		if n.UpdatedAt > e.cfg.LastSyncedAt {
			e.hasUnsynced = true
			return true
		}
	}
	for _, f := range folders {
		if f.UpdatedAt > e.cfg.LastSyncedAt {
			e.hasUnsynced = true
			return true
		}
	}
	return false
}

// PerformSync runs one delta exchange:
//
//	local delta since cursor → peer → remote delta applied via the store's
//	LWW upsert paths → full re-read → cursor = peer's server time.
//
// On failure the cursor is left untouched so the next attempt retries the
// same window; records already applied stay applied, which is safe because
// the upsert paths are idempotent by id and version. The syncing flag is
// cleared on every path out.
func (e *Engine) PerformSync(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if !e.cfg.IsConfigured() {
		e.mu.Unlock()
		return nil, ErrNotConfigured
	}
	if e.syncing {
		e.mu.Unlock()
		e.log.Debug().Msg("sync already running, rejecting concurrent call")
		return nil, ErrSyncInProgress
	}
	e.syncing = true
	since := e.cfg.LastSyncedAt
	exchanger := e.newExchanger(e.cfg.Endpoint, e.cfg.Key)
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.syncing = false
		e.mu.Unlock()
	}()

	delta, err := e.store.GetSyncDelta(since)
	if err != nil {
		return nil, err
	}

	req := &Request{
		LastSyncTime: since,
		Notes:        make([]NoteRecord, 0, len(delta.Notes)),
		Folders:      make([]FolderRecord, 0, len(delta.Folders)),
		Workspaces:   make([]WorkspaceRecord, 0, len(delta.Workspaces)),
	}
	for _, n := range delta.Notes {
		req.Notes = append(req.Notes, noteToWire(n))
	}
	for _, f := range delta.Folders {
		req.Folders = append(req.Folders, folderToWire(f))
	}
	for _, w := range delta.Workspaces {
		req.Workspaces = append(req.Workspaces, workspaceToWire(w))
	}

	resp, err := exchanger.Exchange(ctx, req)
	if err != nil {
		return nil, err
	}

	pulled := 0
	// Workspaces first, then folders, then notes, so parents land before
	// children on a fresh database.
	for _, rec := range resp.Workspaces {
		ws, err := rec.ToModel()
		if err != nil {
			return nil, err
		}
		if err := e.store.ApplyRemoteWorkspace(ws); err != nil {
			return nil, err
		}
		pulled++
	}
	for _, rec := range resp.Folders {
		folder, err := rec.ToModel()
		if err != nil {
			return nil, err
		}
		if err := e.store.ApplyRemoteFolder(folder); err != nil {
			return nil, err
		}
		pulled++
	}
	for _, rec := range resp.Notes {
		note, err := rec.ToModel()
		if err != nil {
			return nil, err
		}
		if err := e.store.ApplyRemoteNote(note); err != nil {
			return nil, err
		}
		pulled++
	}

	result := &Result{
		ServerTime: resp.ServerTime,
		Pushed:     len(req.Notes) + len(req.Folders) + len(req.Workspaces),
		Pulled:     pulled,
	}
	if result.Notes, err = e.store.GetNotes(); err != nil {
		return nil, err
	}
	if result.Folders, err = e.store.GetFolders(); err != nil {
		return nil, err
	}
	if result.Workspaces, err = e.store.GetWorkspaces(); err != nil {
		return nil, err
	}

	// The server's clock, not ours: client skew must not open gaps in the
	// next delta window.
	e.mu.Lock()
	e.cfg.LastSyncedAt = resp.ServerTime
	e.hasUnsynced = false
	cfg := *e.cfg
	e.mu.Unlock()
	if err := e.persistConfig(&cfg); err != nil {
		e.log.Warn().Err(err).Msg("failed to persist sync cursor")
	}

	e.log.Info().
		Int("pushed", result.Pushed).
		Int("pulled", result.Pulled).
		Int64("server_time", resp.ServerTime).
		Msg("sync completed")
	return result, nil
}
