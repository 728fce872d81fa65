// ABOUTME: Mutating actions on the in-memory working set: create, rename,
// ABOUTME: recolor, delete, and content edits, each written through the store.

package app

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lumenote/lumenote/internal/models"
	"github.com/lumenote/lumenote/internal/tree"
)

var (
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrFolderNotFound    = errors.New("folder not found")
	ErrNoteNotFound      = errors.New("note not found")
)

func (a *App) AddWorkspace(name, color string) (*models.Workspace, error) {
	ws := models.NewWorkspace(name, color)
	if err := a.store.UpsertWorkspace(ws); err != nil {
		return nil, err
	}
	ws.Version = 1

	a.mu.Lock()
	a.workspaces = append(a.workspaces, ws)
	a.activeWorkspaceID = ws.ID
	a.mu.Unlock()
	return ws, nil
}

func (a *App) RenameWorkspace(id uuid.UUID, name string) error {
	a.mu.Lock()
	ws := a.findWorkspace(id)
	if ws == nil {
		a.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	ws.Name = name
	ws.Touch()
	snapshot := *ws
	a.mu.Unlock()

	return a.persistWorkspace(&snapshot)
}

func (a *App) RecolorWorkspace(id uuid.UUID, color string) error {
	a.mu.Lock()
	ws := a.findWorkspace(id)
	if ws == nil {
		a.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	ws.Color = color
	ws.Touch()
	snapshot := *ws
	a.mu.Unlock()

	return a.persistWorkspace(&snapshot)
}

// DeleteWorkspace tombstones the workspace and everything inside it so the
// removal propagates through sync as a whole.
func (a *App) DeleteWorkspace(id uuid.UUID) error {
	now := time.Now().UnixMilli()

	a.mu.Lock()
	if a.findWorkspace(id) == nil {
		a.mu.Unlock()
		return ErrWorkspaceNotFound
	}
	var folderIDs, noteIDs []uuid.UUID
	kept := a.workspaces[:0]
	for _, w := range a.workspaces {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	a.workspaces = kept
	keptFolders := a.folders[:0]
	for _, f := range a.folders {
		if f.WorkspaceID == id {
			folderIDs = append(folderIDs, f.ID)
		} else {
			keptFolders = append(keptFolders, f)
		}
	}
	a.folders = keptFolders
	keptNotes := a.notes[:0]
	for _, n := range a.notes {
		if n.WorkspaceID == id {
			noteIDs = append(noteIDs, n.ID)
			if a.activeNoteID == n.ID {
				a.activeNoteID = uuid.Nil
			}
		} else {
			keptNotes = append(keptNotes, n)
		}
	}
	a.notes = keptNotes
	if a.activeWorkspaceID == id {
		a.activeWorkspaceID = uuid.Nil
		if len(a.workspaces) > 0 {
			a.activeWorkspaceID = a.workspaces[0].ID
		}
	}
	a.mu.Unlock()

	for _, nid := range noteIDs {
		a.drafts.CancelPending(nid)
		if err := a.store.DeleteNote(nid, now); err != nil {
			return err
		}
	}
	for _, fid := range folderIDs {
		if err := a.store.DeleteFolder(fid, now); err != nil {
			return err
		}
	}
	if err := a.store.DeleteWorkspace(id, now); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}

// AddFolder creates a folder under parentID (uuid.Nil for the workspace
// root), rejecting placements past the maximum nesting depth.
func (a *App) AddFolder(name string, parentID uuid.UUID) (*models.Folder, error) {
	a.mu.Lock()
	if a.activeWorkspaceID == uuid.Nil {
		a.mu.Unlock()
		return nil, ErrWorkspaceNotFound
	}
	ix := a.indexLocked()
	parentDepth := 0
	if parentID != uuid.Nil {
		d, err := ix.Depth(parentID)
		if err != nil {
			a.mu.Unlock()
			return nil, err
		}
		parentDepth = d
	}
	if parentDepth+1 > tree.MaxDepth {
		a.mu.Unlock()
		return nil, tree.ErrTooDeep
	}
	folder := models.NewFolder(name, parentID, a.activeWorkspaceID)
	a.folders = append(a.folders, folder)
	snapshot := *folder
	a.mu.Unlock()

	if err := a.persistFolder(&snapshot); err != nil {
		return nil, err
	}
	folder.Version = 1
	return folder, nil
}

func (a *App) RenameFolder(id uuid.UUID, name string) error {
	a.mu.Lock()
	folder := a.findFolder(id)
	if folder == nil {
		a.mu.Unlock()
		return ErrFolderNotFound
	}
	folder.Name = name
	folder.Touch()
	snapshot := *folder
	a.mu.Unlock()

	return a.persistFolder(&snapshot)
}

func (a *App) RecolorFolder(id uuid.UUID, color string) error {
	a.mu.Lock()
	folder := a.findFolder(id)
	if folder == nil {
		a.mu.Unlock()
		return ErrFolderNotFound
	}
	folder.Color = color
	folder.Touch()
	snapshot := *folder
	a.mu.Unlock()

	return a.persistFolder(&snapshot)
}

// DeleteFolder tombstones a folder. Its notes move to the workspace root
// and its child folders reparent to the deleted folder's parent, so no
// content is lost with the container.
func (a *App) DeleteFolder(id uuid.UUID) error {
	now := time.Now().UnixMilli()

	a.mu.Lock()
	folder := a.findFolder(id)
	if folder == nil {
		a.mu.Unlock()
		return ErrFolderNotFound
	}
	parentID := folder.ParentID
	kept := a.folders[:0]
	var reparented []*models.Folder
	for _, f := range a.folders {
		if f.ID == id {
			continue
		}
		if f.ParentID == id {
			f.ParentID = parentID
			f.Touch()
			snapshot := *f
			reparented = append(reparented, &snapshot)
		}
		kept = append(kept, f)
	}
	a.folders = kept
	var moved []*models.Note
	for _, n := range a.notes {
		if n.FolderID == id {
			n.FolderID = uuid.Nil
			n.Touch()
			snapshot := *n
			moved = append(moved, &snapshot)
		}
	}
	a.mu.Unlock()

	for _, f := range reparented {
		if err := a.store.UpsertFolder(f); err != nil {
			return err
		}
	}
	for _, n := range moved {
		if err := a.store.UpsertNote(n); err != nil {
			return err
		}
	}
	if err := a.store.DeleteFolder(id, now); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}

// SetFolderExpanded flips presentation state only; nothing is persisted.
func (a *App) SetFolderExpanded(id uuid.UUID, expanded bool) {
	a.mu.Lock()
	if f := a.findFolder(id); f != nil {
		f.IsExpanded = expanded
	}
	a.mu.Unlock()
}

func (a *App) ToggleFolder(id uuid.UUID) {
	a.mu.Lock()
	if f := a.findFolder(id); f != nil {
		f.IsExpanded = !f.IsExpanded
	}
	a.mu.Unlock()
}

// AddNote creates an empty note in folderID (uuid.Nil for root), makes it
// active, and switches to edit mode. The placement obeys the same depth
// bound as moves and drops.
func (a *App) AddNote(title string, folderID uuid.UUID) (*models.Note, error) {
	a.mu.Lock()
	if a.activeWorkspaceID == uuid.Nil {
		a.mu.Unlock()
		return nil, ErrWorkspaceNotFound
	}
	if folderID != uuid.Nil {
		if a.findFolder(folderID) == nil {
			a.mu.Unlock()
			return nil, ErrFolderNotFound
		}
		parentDepth, err := a.indexLocked().Depth(folderID)
		if err != nil {
			a.mu.Unlock()
			return nil, err
		}
		if parentDepth+1 > tree.MaxDepth {
			a.mu.Unlock()
			return nil, tree.ErrTooDeep
		}
	}
	if title == "" {
		title = "New Note"
	}
	note := models.NewNote(title, folderID, a.activeWorkspaceID)
	a.notes = append(a.notes, note)
	previous := a.activeNoteID
	a.activeNoteID = note.ID
	a.viewMode = ModeEdit
	snapshot := *note
	a.mu.Unlock()

	if previous != uuid.Nil {
		if err := a.drafts.Flush(previous); err != nil {
			return nil, err
		}
	}
	if err := a.store.UpsertNote(&snapshot); err != nil {
		return nil, err
	}
	note.Version = 1
	a.recomputeUnsynced()
	return note, nil
}

func (a *App) RenameNote(id uuid.UUID, title string) error {
	a.mu.Lock()
	note := a.findNote(id)
	if note == nil {
		a.mu.Unlock()
		return ErrNoteNotFound
	}
	note.Title = title
	note.Touch()
	snapshot := *note
	a.mu.Unlock()

	a.drafts.Schedule(&snapshot)
	return nil
}

func (a *App) RecolorNote(id uuid.UUID, color string) error {
	a.mu.Lock()
	note := a.findNote(id)
	if note == nil {
		a.mu.Unlock()
		return ErrNoteNotFound
	}
	note.Color = color
	note.Touch()
	snapshot := *note
	a.mu.Unlock()

	return a.store.UpsertNote(&snapshot)
}

// EditContent applies a content edit to the in-memory note and schedules a
// debounced persist; nothing touches the store until the draft flushes.
func (a *App) EditContent(id uuid.UUID, content string) error {
	a.mu.Lock()
	note := a.findNote(id)
	if note == nil {
		a.mu.Unlock()
		return ErrNoteNotFound
	}
	note.Content = content
	note.Touch()
	snapshot := *note
	a.mu.Unlock()

	a.drafts.Schedule(&snapshot)
	return nil
}

// SaveActive flushes the active note's pending draft immediately.
func (a *App) SaveActive() error {
	a.mu.Lock()
	active := a.activeNoteID
	a.mu.Unlock()
	if active == uuid.Nil {
		return nil
	}
	return a.drafts.Flush(active)
}

func (a *App) DeleteNote(id uuid.UUID) error {
	a.drafts.CancelPending(id)

	a.mu.Lock()
	if a.findNote(id) == nil {
		a.mu.Unlock()
		return ErrNoteNotFound
	}
	kept := a.notes[:0]
	for _, n := range a.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	a.notes = kept
	if a.activeNoteID == id {
		a.activeNoteID = uuid.Nil
	}
	a.mu.Unlock()

	if err := a.store.DeleteNote(id, time.Now().UnixMilli()); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}

func (a *App) Search(query string) ([]*models.SearchResult, error) {
	return a.store.SearchNotes(query)
}

// Export writes the workspace to a directory tree of markdown files, after
// flushing drafts so the files reflect the latest edits.
func (a *App) Export(workspaceID uuid.UUID, destPath string) error {
	if err := a.drafts.FlushAll(); err != nil {
		return err
	}
	return a.store.ExportWorkspace(workspaceID, destPath)
}

func (a *App) Import(srcPath, name string) (uuid.UUID, error) {
	id, err := a.store.ImportWorkspace(srcPath, name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := a.Load(); err != nil {
		return uuid.Nil, err
	}
	a.mu.Lock()
	a.activeWorkspaceID = id
	a.mu.Unlock()
	return id, nil
}

func (a *App) persistWorkspace(ws *models.Workspace) error {
	if err := a.store.UpsertWorkspace(ws); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}

func (a *App) persistFolder(f *models.Folder) error {
	if err := a.store.UpsertFolder(f); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}

func (a *App) recomputeUnsynced() {
	a.mu.Lock()
	notes, folders := a.notes, a.folders
	a.mu.Unlock()
	a.engine.RecomputeUnsynced(notes, folders)
}
