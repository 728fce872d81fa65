// ABOUTME: Tests for the hierarchy index: depth, ancestry, visual order.

package tree

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

// fixture builds a workspace shaped like:
//
//	Projects/           (root folder)
//	  Active/           (depth 1)
//	    deep note       (depth 2)
//	  project note      (depth 1)
//	Archive/            (root folder)
//	root note           (root)
type fixture struct {
	ws       uuid.UUID
	projects *models.Folder
	active   *models.Folder
	archive  *models.Folder
	deepNote *models.Note
	projNote *models.Note
	rootNote *models.Note
}

func newFixture() *fixture {
	ws := uuid.New()
	f := &fixture{ws: ws}
	f.projects = models.NewFolder("Projects", uuid.Nil, ws)
	f.active = models.NewFolder("Active", f.projects.ID, ws)
	f.archive = models.NewFolder("Archive", uuid.Nil, ws)
	f.deepNote = models.NewNote("deep note", f.active.ID, ws)
	f.projNote = models.NewNote("project note", f.projects.ID, ws)
	f.rootNote = models.NewNote("root note", uuid.Nil, ws)
	return f
}

func (f *fixture) index() *Index {
	return NewIndex(
		[]*models.Folder{f.projects, f.active, f.archive},
		[]*models.Note{f.deepNote, f.projNote, f.rootNote},
	)
}

func TestDepth(t *testing.T) {
	f := newFixture()
	ix := f.index()

	tests := []struct {
		name string
		id   uuid.UUID
		want int
	}{
		{"root folder", f.projects.ID, 0},
		{"nested folder", f.active.ID, 1},
		{"root note", f.rootNote.ID, 0},
		{"note in root folder", f.projNote.ID, 1},
		{"note in nested folder", f.deepNote.ID, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ix.Depth(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDepthDetectsBrokenParentChain(t *testing.T) {
	ws := uuid.New()
	a := models.NewFolder("a", uuid.Nil, ws)
	b := models.NewFolder("b", a.ID, ws)
	// Corrupt the chain into a cycle.
	a.ParentID = b.ID

	ix := NewIndex([]*models.Folder{a, b}, nil)
	_, err := ix.Depth(b.ID)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestSubtreeHeight(t *testing.T) {
	f := newFixture()
	ix := f.index()

	assert.Equal(t, 1, ix.SubtreeHeight(f.projects.ID))
	assert.Equal(t, 0, ix.SubtreeHeight(f.active.ID))
	assert.Equal(t, 0, ix.SubtreeHeight(f.archive.ID))
}

func TestIsDescendant(t *testing.T) {
	f := newFixture()
	ix := f.index()

	assert.True(t, ix.IsDescendant(f.active.ID, f.projects.ID))
	assert.True(t, ix.IsDescendant(f.deepNote.ID, f.projects.ID))
	assert.False(t, ix.IsDescendant(f.projects.ID, f.active.ID))
	assert.False(t, ix.IsDescendant(f.archive.ID, f.projects.ID))
}

func TestVisualOrderFoldersBeforeNotes(t *testing.T) {
	f := newFixture()
	f.projects.IsExpanded = true
	f.active.IsExpanded = true
	f.archive.IsExpanded = true

	order := f.index().VisualOrder()
	want := []uuid.UUID{
		f.projects.ID,
		f.active.ID,
		f.deepNote.ID,
		f.projNote.ID,
		f.archive.ID,
		f.rootNote.ID,
	}
	assert.Equal(t, want, order)
}

func TestVisualOrderCollapsedFolderHidesChildren(t *testing.T) {
	f := newFixture()
	f.projects.IsExpanded = false
	f.archive.IsExpanded = true

	order := f.index().VisualOrder()
	want := []uuid.UUID{
		f.projects.ID,
		f.archive.ID,
		f.rootNote.ID,
	}
	assert.Equal(t, want, order)
}

func TestSiblings(t *testing.T) {
	f := newFixture()
	ix := f.index()

	root := ix.Siblings(uuid.Nil)
	assert.Equal(t, []uuid.UUID{f.projects.ID, f.archive.ID, f.rootNote.ID}, root)

	inProjects := ix.Siblings(f.projects.ID)
	assert.Equal(t, []uuid.UUID{f.active.ID, f.projNote.ID}, inProjects)
}
