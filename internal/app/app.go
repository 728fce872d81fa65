// ABOUTME: Application state container: single source of truth for
// ABOUTME: in-memory entities, composing tree, draft, and sync components.

package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lumenote/lumenote/internal/draft"
	"github.com/lumenote/lumenote/internal/models"
	synceng "github.com/lumenote/lumenote/internal/sync"
	"github.com/lumenote/lumenote/internal/tree"
)

type ViewMode string

const (
	ModeEdit ViewMode = "edit"
	ModeView ViewMode = "view"
)

// Gateway is the record store contract the container depends on. The
// concrete implementation lives in internal/store; tests substitute fakes.
type Gateway interface {
	GetWorkspaces() ([]*models.Workspace, error)
	UpsertWorkspace(*models.Workspace) error
	DeleteWorkspace(id uuid.UUID, now int64) error

	GetFolders() ([]*models.Folder, error)
	UpsertFolder(*models.Folder) error
	DeleteFolder(id uuid.UUID, now int64) error

	GetNotes() ([]*models.Note, error)
	GetNoteByID(uuid.UUID) (*models.Note, error)
	UpsertNote(*models.Note) error
	DeleteNote(id uuid.UUID, now int64) error

	GetSyncDelta(since int64) (*models.Delta, error)
	ApplyRemoteNote(*models.Note) error
	ApplyRemoteFolder(*models.Folder) error
	ApplyRemoteWorkspace(*models.Workspace) error

	SearchNotes(query string) ([]*models.SearchResult, error)
	ExportWorkspace(workspaceID uuid.UUID, destPath string) error
	ImportWorkspace(srcPath, name string) (uuid.UUID, error)
}

// App owns the in-memory working set. Mutating actions update memory first
// (the optimistic copy the UI renders from) and then write through to the
// store; canonical state is re-read at checkpoints (startup, after saves,
// after sync) rather than after every mutation.
type App struct {
	mu    sync.Mutex
	store Gateway
	log   zerolog.Logger

	drafts *draft.Coordinator
	engine *synceng.Engine
	drag   *tree.DragController

	workspaces []*models.Workspace
	folders    []*models.Folder
	notes      []*models.Note

	activeWorkspaceID uuid.UUID
	activeNoteID      uuid.UUID
	viewMode          ViewMode
}

func New(store Gateway, cfg *synceng.Config, log zerolog.Logger) *App {
	a := &App{
		store:    store,
		log:      log,
		viewMode: ModeView,
	}
	a.drafts = draft.NewCoordinator(store, a.onNoteSaved, log)
	a.engine = synceng.NewEngine(store, cfg, log)
	a.drag = tree.NewDragController(a.Index, a.SetFolderExpanded)
	return a
}

// Load initializes every entity collection from the store. The first
// workspace becomes active; none is created implicitly.
func (a *App) Load() error {
	workspaces, err := a.store.GetWorkspaces()
	if err != nil {
		return err
	}
	folders, err := a.store.GetFolders()
	if err != nil {
		return err
	}
	notes, err := a.store.GetNotes()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.workspaces = workspaces
	a.folders = folders
	a.notes = notes
	for _, f := range a.folders {
		f.IsExpanded = true
	}
	if a.activeWorkspaceID == uuid.Nil && len(workspaces) > 0 {
		a.activeWorkspaceID = workspaces[0].ID
	}
	notesSnap, foldersSnap := a.notes, a.folders
	a.mu.Unlock()

	a.engine.RecomputeUnsynced(notesSnap, foldersSnap)
	return nil
}

// Close flushes pending drafts; call before teardown.
func (a *App) Close() error {
	return a.drafts.FlushAll()
}

func (a *App) Drafts() *draft.Coordinator { return a.drafts }
func (a *App) Sync() *synceng.Engine      { return a.engine }
func (a *App) Drag() *tree.DragController { return a.drag }

func (a *App) Workspaces() []*models.Workspace {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*models.Workspace(nil), a.workspaces...)
}

func (a *App) Folders() []*models.Folder {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*models.Folder(nil), a.folders...)
}

func (a *App) Notes() []*models.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*models.Note(nil), a.notes...)
}

func (a *App) ActiveWorkspaceID() uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeWorkspaceID
}

func (a *App) ActiveNoteID() uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeNoteID
}

func (a *App) ViewMode() ViewMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewMode
}

func (a *App) SetViewMode(mode ViewMode) {
	a.mu.Lock()
	a.viewMode = mode
	a.mu.Unlock()
}

// SetActiveWorkspace switches workspaces, flushing any pending draft first.
func (a *App) SetActiveWorkspace(id uuid.UUID) error {
	a.mu.Lock()
	active := a.activeNoteID
	a.activeWorkspaceID = id
	a.activeNoteID = uuid.Nil
	a.mu.Unlock()

	if active != uuid.Nil {
		return a.drafts.Flush(active)
	}
	return nil
}

// SetActiveNote switches the active note. The previous note's pending draft
// is flushed before the switch completes so no edit is silently lost.
func (a *App) SetActiveNote(id uuid.UUID) error {
	a.mu.Lock()
	previous := a.activeNoteID
	a.activeNoteID = id
	a.mu.Unlock()

	if previous != uuid.Nil && previous != id {
		return a.drafts.Flush(previous)
	}
	return nil
}

// Index builds a snapshot of the active workspace's hierarchy.
func (a *App) Index() *tree.Index {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.indexLocked()
}

func (a *App) indexLocked() *tree.Index {
	var folders []*models.Folder
	var notes []*models.Note
	for _, f := range a.folders {
		if f.WorkspaceID == a.activeWorkspaceID {
			folders = append(folders, f)
		}
	}
	for _, n := range a.notes {
		if n.WorkspaceID == a.activeWorkspaceID {
			notes = append(notes, n)
		}
	}
	return tree.NewIndex(folders, notes)
}

// onNoteSaved swaps the store's canonical copy (with its new version) into
// the in-memory working set after a persist completes.
func (a *App) onNoteSaved(canonical *models.Note) {
	a.mu.Lock()
	for i, n := range a.notes {
		if n.ID == canonical.ID {
			canonical.Color = n.Color // color is cosmetic; keep the live value
			a.notes[i] = canonical
			break
		}
	}
	notes, folders := a.notes, a.folders
	a.mu.Unlock()

	a.engine.RecomputeUnsynced(notes, folders)
}

func (a *App) findWorkspace(id uuid.UUID) *models.Workspace {
	for _, w := range a.workspaces {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (a *App) findFolder(id uuid.UUID) *models.Folder {
	for _, f := range a.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

func (a *App) findNote(id uuid.UUID) *models.Note {
	for _, n := range a.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
