// ABOUTME: Tree move and drop application: reparenting and sibling
// ABOUTME: reordering with depth and cycle validation before any splice.

package app

import (
	"github.com/google/uuid"

	"github.com/lumenote/lumenote/internal/models"
	"github.com/lumenote/lumenote/internal/tree"
)

// MoveNote reparents a note to folderID (uuid.Nil for root), appended after
// its new siblings.
func (a *App) MoveNote(id, folderID uuid.UUID) error {
	a.mu.Lock()
	note := a.findNote(id)
	if note == nil {
		a.mu.Unlock()
		return ErrNoteNotFound
	}
	ix := a.indexLocked()
	if folderID != uuid.Nil {
		if !ix.IsFolder(folderID) {
			a.mu.Unlock()
			return ErrFolderNotFound
		}
		depth, err := ix.Depth(folderID)
		if err != nil {
			a.mu.Unlock()
			return err
		}
		if depth+1 > tree.MaxDepth {
			a.mu.Unlock()
			return tree.ErrTooDeep
		}
	}
	note.FolderID = folderID
	note.Touch()
	snapshot := *note
	a.mu.Unlock()

	a.persistMoved(models.NoteItem(&snapshot))
	return nil
}

// MoveFolder reparents a folder, rejecting cycles and placements that would
// push the folder's subtree past the maximum depth.
func (a *App) MoveFolder(id, parentID uuid.UUID) error {
	a.mu.Lock()
	folder := a.findFolder(id)
	if folder == nil {
		a.mu.Unlock()
		return ErrFolderNotFound
	}
	ix := a.indexLocked()
	if parentID != uuid.Nil {
		if !ix.IsFolder(parentID) {
			a.mu.Unlock()
			return ErrFolderNotFound
		}
		if parentID == id || ix.IsDescendant(parentID, id) {
			a.mu.Unlock()
			return tree.ErrCycle
		}
		depth, err := ix.Depth(parentID)
		if err != nil {
			a.mu.Unlock()
			return err
		}
		if depth+1+ix.SubtreeHeight(id) > tree.MaxDepth {
			a.mu.Unlock()
			return tree.ErrTooDeep
		}
	}
	folder.ParentID = parentID
	folder.Touch()
	snapshot := *folder
	a.mu.Unlock()

	a.persistMoved(models.FolderItem(&snapshot))
	return nil
}

// FinishDrag resolves the controller's current gesture and applies it.
// A gesture with no valid drop target is a no-op.
func (a *App) FinishDrag() error {
	draggedID, drop, ok := a.drag.Drop()
	if !ok {
		return nil
	}
	return a.ApplyDrop(draggedID, drop)
}

// ApplyDrop reparents and reorders the dragged item per a resolved drop.
// The new state is written through immediately; the interaction does not
// wait on persistence failures beyond their being surfaced here.
func (a *App) ApplyDrop(draggedID uuid.UUID, drop tree.Drop) error {
	a.mu.Lock()
	ix := a.indexLocked()
	item, found := ix.Item(draggedID)
	if !found {
		a.mu.Unlock()
		return ErrNoteNotFound
	}

	// Count same-kind siblings ahead of the insertion point. The mixed
	// sibling order lists folders before notes, and the entity slices keep
	// per-kind order, so the splice lands relative to the same kind.
	siblings := ix.Siblings(drop.ParentID)
	pos := 0
	ahead := 0
	for _, sid := range siblings {
		if sid == draggedID {
			continue
		}
		if pos >= drop.Index {
			break
		}
		pos++
		if ix.IsFolder(sid) == (item.Kind == models.KindFolder) {
			ahead++
		}
	}

	var snapshot models.Item
	switch item.Kind {
	case models.KindFolder:
		item.Folder.ParentID = drop.ParentID
		item.Folder.Touch()
		a.folders = spliceFolders(a.folders, item.Folder, drop.ParentID, ahead)
		f := *item.Folder
		snapshot = models.FolderItem(&f)
	default:
		item.Note.FolderID = drop.ParentID
		item.Note.Touch()
		a.notes = spliceNotes(a.notes, item.Note, drop.ParentID, ahead)
		n := *item.Note
		snapshot = models.NoteItem(&n)
	}
	a.mu.Unlock()

	a.persistMoved(snapshot)
	return nil
}

// spliceNotes removes note from the slice and reinserts it so that it has
// exactly `ahead` siblings with the same parent before it.
func spliceNotes(notes []*models.Note, note *models.Note, parentID uuid.UUID, ahead int) []*models.Note {
	out := notes[:0]
	for _, n := range notes {
		if n.ID != note.ID {
			out = append(out, n)
		}
	}
	at := len(out)
	seen := 0
	for i, n := range out {
		if n.FolderID != parentID {
			continue
		}
		if seen == ahead {
			at = i
			break
		}
		seen++
	}
	out = append(out, nil)
	copy(out[at+1:], out[at:])
	out[at] = note
	return out
}

func spliceFolders(folders []*models.Folder, folder *models.Folder, parentID uuid.UUID, ahead int) []*models.Folder {
	out := folders[:0]
	for _, f := range folders {
		if f.ID != folder.ID {
			out = append(out, f)
		}
	}
	at := len(out)
	seen := 0
	for i, f := range out {
		if f.ParentID != parentID {
			continue
		}
		if seen == ahead {
			at = i
			break
		}
		seen++
	}
	out = append(out, nil)
	copy(out[at+1:], out[at:])
	out[at] = folder
	return out
}

// persistMoved writes a moved item through the store. Move persistence is
// best-effort from the caller's perspective: a failure is logged and the
// optimistic in-memory state stands until the next checkpoint reload.
func (a *App) persistMoved(item models.Item) {
	var err error
	switch item.Kind {
	case models.KindFolder:
		err = a.store.UpsertFolder(item.Folder)
	default:
		err = a.store.UpsertNote(item.Note)
	}
	if err != nil {
		a.log.Warn().Err(err).Str("item", item.ID().String()).Msg("move persist failed")
		return
	}
	a.recomputeUnsynced()
}
