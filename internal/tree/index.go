// ABOUTME: Indexed view of one workspace's folder/note hierarchy.
// ABOUTME: Depth, subtree height, ancestry walks, and visual ordering.

package tree

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

// MaxDepth is the deepest level any item may occupy: root items sit at 0,
// with at most two nested levels below.
const MaxDepth = 2

// maxAncestorWalk bounds every parent-chain walk. The acyclicity invariant
// keeps chains at MaxDepth+1 links; hitting the bound means the invariant
// was broken elsewhere and we fail loudly instead of looping.
const maxAncestorWalk = 16

var (
	ErrCycle   = errors.New("tree: parent chain does not terminate")
	ErrTooDeep = errors.New("tree: placement exceeds maximum nesting depth")
)

// Index holds one workspace's items keyed for ancestry walks. Build a fresh
// Index from current state for each interaction; it is a snapshot, not a
// live view.
type Index struct {
	folders map[uuid.UUID]*models.Folder
	notes   map[uuid.UUID]*models.Note

	// sibling lists in insertion order, keyed by parent (uuid.Nil = root)
	childFolders map[uuid.UUID][]*models.Folder
	childNotes   map[uuid.UUID][]*models.Note
}

func NewIndex(folders []*models.Folder, notes []*models.Note) *Index {
	ix := &Index{
		folders:      make(map[uuid.UUID]*models.Folder, len(folders)),
		notes:        make(map[uuid.UUID]*models.Note, len(notes)),
		childFolders: make(map[uuid.UUID][]*models.Folder),
		childNotes:   make(map[uuid.UUID][]*models.Note),
	}
	for _, f := range folders {
		ix.folders[f.ID] = f
		ix.childFolders[f.ParentID] = append(ix.childFolders[f.ParentID], f)
	}
	for _, n := range notes {
		ix.notes[n.ID] = n
		ix.childNotes[n.FolderID] = append(ix.childNotes[n.FolderID], n)
	}
	return ix
}

func (ix *Index) IsFolder(id uuid.UUID) bool {
	_, ok := ix.folders[id]
	return ok
}

func (ix *Index) IsNote(id uuid.UUID) bool {
	_, ok := ix.notes[id]
	return ok
}

// Item returns the tagged union for an id, or ok=false if unknown.
func (ix *Index) Item(id uuid.UUID) (models.Item, bool) {
	if f, ok := ix.folders[id]; ok {
		return models.FolderItem(f), true
	}
	if n, ok := ix.notes[id]; ok {
		return models.NoteItem(n), true
	}
	return models.Item{}, false
}

// Depth returns 0 for root-parented items and 1+Depth(parent) otherwise.
func (ix *Index) Depth(id uuid.UUID) (int, error) {
	item, ok := ix.Item(id)
	if !ok {
		return 0, nil
	}
	depth := 0
	parent := item.ParentID()
	for parent != uuid.Nil {
		if depth >= maxAncestorWalk {
			return 0, ErrCycle
		}
		folder, ok := ix.folders[parent]
		if !ok {
			break
		}
		depth++
		parent = folder.ParentID
	}
	return depth, nil
}

// SubtreeHeight is the maximum folder nesting beneath folderID; 0 when the
// folder contains no child folders. Notes do not count, they are leaves.
func (ix *Index) SubtreeHeight(folderID uuid.UUID) int {
	return ix.subtreeHeight(folderID, 0)
}

func (ix *Index) subtreeHeight(folderID uuid.UUID, walked int) int {
	if walked >= maxAncestorWalk {
		return maxAncestorWalk
	}
	height := 0
	for _, child := range ix.childFolders[folderID] {
		if h := 1 + ix.subtreeHeight(child.ID, walked+1); h > height {
			height = h
		}
	}
	return height
}

// IsDescendant reports whether id sits anywhere beneath ancestorID, walking
// the parent chain of id.
func (ix *Index) IsDescendant(id, ancestorID uuid.UUID) bool {
	item, ok := ix.Item(id)
	if !ok {
		return false
	}
	parent := item.ParentID()
	for steps := 0; parent != uuid.Nil && steps < maxAncestorWalk; steps++ {
		if parent == ancestorID {
			return true
		}
		folder, ok := ix.folders[parent]
		if !ok {
			return false
		}
		parent = folder.ParentID
	}
	return false
}

// VisualOrder is the sidebar's depth-first ordering: folders before their
// sibling notes, collapsed folders not recursed.
func (ix *Index) VisualOrder() []uuid.UUID {
	return ix.visualOrder(uuid.Nil, 0)
}

func (ix *Index) visualOrder(parentID uuid.UUID, walked int) []uuid.UUID {
	if walked >= maxAncestorWalk {
		return nil
	}
	var result []uuid.UUID
	for _, f := range ix.childFolders[parentID] {
		result = append(result, f.ID)
		if f.IsExpanded {
			result = append(result, ix.visualOrder(f.ID, walked+1)...)
		}
	}
	for _, n := range ix.childNotes[parentID] {
		result = append(result, n.ID)
	}
	return result
}

// Siblings returns the ordered ids sharing a parent: folders first, then
// notes, matching VisualOrder's layout at a single level.
func (ix *Index) Siblings(parentID uuid.UUID) []uuid.UUID {
	var result []uuid.UUID
	for _, f := range ix.childFolders[parentID] {
		result = append(result, f.ID)
	}
	for _, n := range ix.childNotes[parentID] {
		result = append(result, n.ID)
	}
	return result
}
