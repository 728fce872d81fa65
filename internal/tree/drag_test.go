// ABOUTME: Tests for the drag state machine and the auto-expand hover timer.

package tree

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

// dragHarness owns the mutable folder state the controller manipulates
// through its setExpanded callback, the way the app container does.
type dragHarness struct {
	mu sync.Mutex
	f  *fixture
}

func newDragHarness() (*dragHarness, *DragController) {
	h := &dragHarness{f: newFixture()}
	dc := NewDragController(h.snapshot, h.setExpanded)
	dc.SetHoverDelay(10 * time.Millisecond)
	return h, dc
}

func (h *dragHarness) snapshot() *Index {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.f.index()
}

func (h *dragHarness) setExpanded(id uuid.UUID, expanded bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, folder := range []*models.Folder{h.f.projects, h.f.active, h.f.archive} {
		if folder.ID == id {
			folder.IsExpanded = expanded
		}
	}
}

func (h *dragHarness) expanded(id uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, folder := range []*models.Folder{h.f.projects, h.f.active, h.f.archive} {
		if folder.ID == id {
			return folder.IsExpanded
		}
	}
	return false
}

func TestBeginCollapsesDraggedFolder(t *testing.T) {
	h, dc := newDragHarness()
	h.f.projects.IsExpanded = true

	dc.Begin(h.f.projects.ID)
	assert.False(t, h.expanded(h.f.projects.ID))
	dc.Cancel()
}

func TestDropWithoutHoverIsNoOp(t *testing.T) {
	h, dc := newDragHarness()
	dc.Begin(h.f.rootNote.ID)

	_, _, ok := dc.Drop()
	assert.False(t, ok)
}

func TestDragHoverDropRoundTrip(t *testing.T) {
	h, dc := newDragHarness()

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.archive.ID, Inside)

	draggedID, drop, ok := dc.Drop()
	require.True(t, ok)
	assert.Equal(t, h.f.rootNote.ID, draggedID)
	assert.Equal(t, h.f.archive.ID, drop.ParentID)

	// The gesture is consumed: a second drop is a no-op.
	_, _, ok = dc.Drop()
	assert.False(t, ok)
}

func TestHoverOverDraggedItemClearsTarget(t *testing.T) {
	h, dc := newDragHarness()

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.archive.ID, Inside)
	dc.Hover(h.f.rootNote.ID, Inside)

	_, _, ok := dc.Drop()
	assert.False(t, ok)
}

func TestSustainedHoverExpandsCollapsedFolder(t *testing.T) {
	h, dc := newDragHarness()
	h.f.archive.IsExpanded = false

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.archive.ID, Inside)

	require.Eventually(t, func() bool {
		return h.expanded(h.f.archive.ID)
	}, time.Second, 2*time.Millisecond)
	dc.Cancel()
}

func TestLeavingFolderBeforeDelayCancelsExpand(t *testing.T) {
	h, dc := newDragHarness()
	h.f.archive.IsExpanded = false

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.archive.ID, Inside)
	dc.Hover(h.f.archive.ID, Above) // pointer slid to the top band

	time.Sleep(50 * time.Millisecond)
	assert.False(t, h.expanded(h.f.archive.ID))
	dc.Cancel()
}

func TestSwitchingHoverTargetReArmsTimer(t *testing.T) {
	h, dc := newDragHarness()
	h.f.projects.IsExpanded = false
	h.f.archive.IsExpanded = false

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.projects.ID, Inside)
	dc.Hover(h.f.archive.ID, Inside)

	require.Eventually(t, func() bool {
		return h.expanded(h.f.archive.ID)
	}, time.Second, 2*time.Millisecond)
	// The abandoned target never expands.
	assert.False(t, h.expanded(h.f.projects.ID))
	dc.Cancel()
}

func TestCancelResetsGesture(t *testing.T) {
	h, dc := newDragHarness()

	dc.Begin(h.f.rootNote.ID)
	dc.Hover(h.f.archive.ID, Inside)
	dc.Cancel()

	_, _, ok := dc.Drop()
	assert.False(t, ok)
}
