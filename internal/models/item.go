// ABOUTME: Tagged union over the two sidebar item kinds sharing one id-space.
// ABOUTME: Avoids probing separate collections to tell notes from folders.

package models

import "github.com/google/uuid"

type ItemKind int

const (
	KindNote ItemKind = iota
	KindFolder
)

// Item wraps either a note or a folder. Exactly one of Note/Folder is set,
// matching Kind.
type Item struct {
	Kind   ItemKind
	Note   *Note
	Folder *Folder
}

func NoteItem(n *Note) Item { return Item{Kind: KindNote, Note: n} }

func FolderItem(f *Folder) Item { return Item{Kind: KindFolder, Folder: f} }

func (it Item) ID() uuid.UUID {
	if it.Kind == KindFolder {
		return it.Folder.ID
	}
	return it.Note.ID
}

// ParentID is the containing folder, or uuid.Nil for workspace root.
func (it Item) ParentID() uuid.UUID {
	if it.Kind == KindFolder {
		return it.Folder.ParentID
	}
	return it.Note.FolderID
}

func (it Item) UpdatedAt() int64 {
	if it.Kind == KindFolder {
		return it.Folder.UpdatedAt
	}
	return it.Note.UpdatedAt
}
