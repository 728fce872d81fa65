// ABOUTME: Drag interaction state machine: idle, dragging, hovering.
// ABOUTME: Owns the auto-expand hover timer for collapsed folder targets.

package tree

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHoverDelay is how long the pointer must rest "inside" a collapsed
// folder before it is expanded for the drop.
const DefaultHoverDelay = 300 * time.Millisecond

type dragState int

const (
	stateIdle dragState = iota
	stateDragging
	stateHovering
)

// DragController runs one drag gesture at a time. The snapshot func gives
// it a fresh Index per event so every hover recomputes accept/reject from
// scratch; setExpanded toggles a folder's expansion in the owning state.
type DragController struct {
	mu          sync.Mutex
	snapshot    func() *Index
	setExpanded func(folderID uuid.UUID, expanded bool)
	hoverDelay  time.Duration

	state        dragState
	draggedID    uuid.UUID
	hoverTarget  uuid.UUID
	hoverPos     Position
	expandTimer  *time.Timer
	expandTarget uuid.UUID
}

func NewDragController(snapshot func() *Index, setExpanded func(uuid.UUID, bool)) *DragController {
	return &DragController{
		snapshot:    snapshot,
		setExpanded: setExpanded,
		hoverDelay:  DefaultHoverDelay,
	}
}

// SetHoverDelay overrides the auto-expand interval, for tests.
func (dc *DragController) SetHoverDelay(d time.Duration) {
	dc.mu.Lock()
	dc.hoverDelay = d
	dc.mu.Unlock()
}

// Begin starts a drag. A dragged folder is collapsed immediately so its
// children do not thrash around under the pointer.
func (dc *DragController) Begin(id uuid.UUID) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	dc.state = stateDragging
	dc.draggedID = id
	dc.hoverTarget = uuid.Nil
	dc.stopExpandTimerLocked()

	if dc.snapshot().IsFolder(id) {
		dc.setExpanded(id, false)
	}
}

// Hover updates the current target. The accept decision is recomputed from
// a fresh snapshot on every call; a sustained "inside" hover over a
// collapsed folder arms the auto-expand timer.
func (dc *DragController) Hover(overID uuid.UUID, pos Position) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	if dc.state == stateIdle {
		return
	}
	if overID == dc.draggedID || overID == uuid.Nil {
		dc.state = stateDragging
		dc.hoverTarget = uuid.Nil
		dc.stopExpandTimerLocked()
		return
	}

	dc.state = stateHovering
	dc.hoverTarget = overID
	dc.hoverPos = pos

	ix := dc.snapshot()
	folder, isFolder := ix.folders[overID]
	if isFolder && pos == Inside && !folder.IsExpanded {
		if dc.expandTimer != nil && dc.expandTarget != overID {
			dc.stopExpandTimerLocked()
		}
		if dc.expandTimer == nil {
			id := overID
			dc.expandTarget = id
			dc.expandTimer = time.AfterFunc(dc.hoverDelay, func() {
				dc.mu.Lock()
				stillHovering := dc.state == stateHovering && dc.hoverTarget == id && dc.hoverPos == Inside
				dc.expandTimer = nil
				dc.mu.Unlock()
				if stillHovering {
					dc.setExpanded(id, true)
				}
			})
		}
	} else {
		dc.stopExpandTimerLocked()
	}
}

// Drop finishes the gesture and resolves it against current state. ok is
// false when there is no valid target; either way the controller returns
// to idle.
func (dc *DragController) Drop() (draggedID uuid.UUID, drop Drop, ok bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	defer dc.resetLocked()

	if dc.state != stateHovering || dc.hoverTarget == uuid.Nil {
		return uuid.Nil, Drop{}, false
	}
	drop, ok = dc.snapshot().ResolveDrop(dc.draggedID, dc.hoverTarget, dc.hoverPos)
	return dc.draggedID, drop, ok
}

// Cancel aborts the gesture without any structural change.
func (dc *DragController) Cancel() {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	dc.resetLocked()
}

func (dc *DragController) resetLocked() {
	dc.state = stateIdle
	dc.draggedID = uuid.Nil
	dc.hoverTarget = uuid.Nil
	dc.stopExpandTimerLocked()
}

func (dc *DragController) stopExpandTimerLocked() {
	if dc.expandTimer != nil {
		dc.expandTimer.Stop()
		dc.expandTimer = nil
	}
	dc.expandTarget = uuid.Nil
}
