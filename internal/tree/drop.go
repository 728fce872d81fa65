// ABOUTME: Drop resolution: turns a drag gesture into a structural mutation.
// ABOUTME: Rejects self-drops, cycles, and moves that would exceed max depth.

package tree

import (
	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

// Position is the qualitative pointer position over the hovered item.
type Position int

const (
	Above Position = iota
	Inside
	Below
)

func (p Position) String() string {
	switch p {
	case Above:
		return "above"
	case Inside:
		return "inside"
	default:
		return "below"
	}
}

// PointerPosition derives the qualitative position from the dragged item's
// vertical center against the target's bounding box. Folder targets treat
// the top 30% as "above" and the rest as "inside", which keeps fast drags
// from landing inside by accident; non-folder targets split at the midpoint.
func PointerPosition(draggedCenterY, overTop, overHeight float64, overIsFolder bool) Position {
	if overIsFolder {
		if draggedCenterY < overTop+overHeight*0.3 {
			return Above
		}
		return Inside
	}
	if draggedCenterY < overTop+overHeight/2 {
		return Above
	}
	return Below
}

// Drop is the structural result of an accepted drag: the new parent
// (uuid.Nil = workspace root) and the insertion index among the parent's
// siblings as returned by Index.Siblings, dragged item excluded.
type Drop struct {
	ParentID uuid.UUID
	Index    int
}

// ResolveDrop computes the structural mutation for dropping draggedID at
// the given position relative to overID. ok is false when the drop must be
// rejected: self-drop, reparenting a folder into its own descendant, or a
// destination that would push the dragged subtree past MaxDepth. A rejected
// drop is a no-op, not an error.
func (ix *Index) ResolveDrop(draggedID, overID uuid.UUID, pos Position) (Drop, bool) {
	if draggedID == overID {
		return Drop{}, false
	}
	over, ok := ix.Item(overID)
	if !ok {
		return Drop{}, false
	}
	dragged, ok := ix.Item(draggedID)
	if !ok {
		return Drop{}, false
	}

	var parentID uuid.UUID
	if over.Kind == models.KindFolder && pos == Inside {
		parentID = overID
	} else {
		parentID = over.ParentID()
	}

	if dragged.Kind == models.KindFolder {
		if parentID == draggedID || ix.IsDescendant(parentID, draggedID) {
			return Drop{}, false
		}
	}

	parentDepth := -1
	if parentID != uuid.Nil {
		d, err := ix.Depth(parentID)
		if err != nil {
			return Drop{}, false
		}
		parentDepth = d
	}

	if ix.IsFolder(draggedID) {
		if parentDepth+1+ix.SubtreeHeight(draggedID) > MaxDepth {
			return Drop{}, false
		}
	} else {
		if parentDepth+1 > MaxDepth {
			return Drop{}, false
		}
	}

	return Drop{ParentID: parentID, Index: ix.insertionIndex(draggedID, overID, parentID, pos)}, true
}

func (ix *Index) insertionIndex(draggedID, overID, parentID uuid.UUID, pos Position) int {
	siblings := ix.Siblings(parentID)
	idx := 0
	for _, id := range siblings {
		if id == draggedID {
			continue
		}
		if id == overID {
			if pos == Below {
				idx++
			}
			return idx
		}
		idx++
	}
	// Inside drop or target not among siblings: append at end.
	return idx
}
