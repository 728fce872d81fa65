// ABOUTME: Tests for full-text note search over the FTS5 index.

package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

func TestSearchNotesMatchesTitleAndContent(t *testing.T) {
	s := openTestStore(t)
	wsID := uuid.New()

	byTitle := models.NewNote("Grocery list", uuid.Nil, wsID)
	byTitle.Content = "milk and eggs"
	require.NoError(t, s.UpsertNote(byTitle))

	byContent := models.NewNote("Random", uuid.Nil, wsID)
	byContent.Content = "remember the groceries"
	require.NoError(t, s.UpsertNote(byContent))

	other := models.NewNote("Unrelated", uuid.Nil, wsID)
	other.Content = "nothing to see"
	require.NoError(t, s.UpsertNote(other))

	results, err := s.SearchNotes("grocer")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchNotesExcludesDeleted(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Findable", uuid.Nil, uuid.New())
	note.Content = "searchable text"
	require.NoError(t, s.UpsertNote(note))
	require.NoError(t, s.DeleteNote(note.ID, note.UpdatedAt+1))

	results, err := s.SearchNotes("searchable")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchNotesEscapesQuotes(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Quoted", uuid.Nil, uuid.New())
	note.Content = `she said "hello" twice`
	require.NoError(t, s.UpsertNote(note))

	results, err := s.SearchNotes(`"hello"`)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchNotesUpdatedContentIsIndexed(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Evolving", uuid.Nil, uuid.New())
	note.Content = "first draft"
	require.NoError(t, s.UpsertNote(note))

	note.Content = "second wording entirely"
	note.Touch()
	require.NoError(t, s.UpsertNote(note))

	results, err := s.SearchNotes("first")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = s.SearchNotes("wording")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}
