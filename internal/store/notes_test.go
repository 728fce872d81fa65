// ABOUTME: Tests for note store operations: versioning, tombstones, and
// ABOUTME: last-writer-wins application of remote records.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

func TestUpsertNoteVersioning(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("First", uuid.Nil, uuid.New())
	require.NoError(t, s.UpsertNote(note))

	stored, err := s.GetNoteByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
	assert.Equal(t, "First", stored.Title)
	assert.Equal(t, uuid.Nil, stored.FolderID)

	note.Content = "updated body"
	note.Touch()
	require.NoError(t, s.UpsertNote(note))

	stored, err = s.GetNoteByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.Version)
	assert.Equal(t, "updated body", stored.Content)
}

func TestGetNoteByIDNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetNoteByID(uuid.New())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteNoteWritesTombstone(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Doomed", uuid.Nil, uuid.New())
	require.NoError(t, s.UpsertNote(note))
	require.NoError(t, s.DeleteNote(note.ID, note.UpdatedAt+100))

	// Gone from reads.
	_, err := s.GetNoteByID(note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	notes, err := s.GetNotes()
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Still present in the sync delta, with a bumped version.
	delta, err := s.GetSyncDelta(0)
	require.NoError(t, err)
	require.Len(t, delta.Notes, 1)
	assert.True(t, delta.Notes[0].IsDeleted)
	assert.Equal(t, int64(2), delta.Notes[0].Version)
}

func TestDeleteNoteAlreadyDeleted(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Once", uuid.Nil, uuid.New())
	require.NoError(t, s.UpsertNote(note))
	require.NoError(t, s.DeleteNote(note.ID, note.UpdatedAt+1))

	err := s.DeleteNote(note.ID, note.UpdatedAt+2)
	assert.True(t, errors.Is(err, ErrNoteNotFound))
}

func TestApplyRemoteNoteLastWriterWins(t *testing.T) {
	s := openTestStore(t)
	wsID := uuid.New()

	local := models.NewNote("Local", uuid.Nil, wsID)
	local.Content = "local content"
	require.NoError(t, s.UpsertNote(local))
	require.NoError(t, s.UpsertNote(local)) // version 2

	// Stale remote record (lower version) must not regress local state.
	stale := *local
	stale.Content = "stale remote"
	stale.Version = 1
	require.NoError(t, s.ApplyRemoteNote(&stale))

	stored, err := s.GetNoteByID(local.ID)
	require.NoError(t, err)
	assert.Equal(t, "local content", stored.Content)
	assert.Equal(t, int64(2), stored.Version)

	// Newer remote record wins and its version is taken verbatim.
	newer := *local
	newer.Content = "newer remote"
	newer.Version = 7
	newer.UpdatedAt = local.UpdatedAt + 500
	require.NoError(t, s.ApplyRemoteNote(&newer))

	stored, err = s.GetNoteByID(local.ID)
	require.NoError(t, err)
	assert.Equal(t, "newer remote", stored.Content)
	assert.Equal(t, int64(7), stored.Version)
}

func TestApplyRemoteNoteEqualVersionTiebreak(t *testing.T) {
	s := openTestStore(t)

	local := models.NewNote("Tie", uuid.Nil, uuid.New())
	require.NoError(t, s.UpsertNote(local))

	// Same version, later timestamp: remote wins.
	remote := *local
	remote.Content = "remote at same version"
	remote.Version = 1
	remote.UpdatedAt = local.UpdatedAt + 1
	require.NoError(t, s.ApplyRemoteNote(&remote))

	stored, err := s.GetNoteByID(local.ID)
	require.NoError(t, err)
	assert.Equal(t, "remote at same version", stored.Content)

	// Re-applying the same record is a no-op: equal version, equal time.
	require.NoError(t, s.ApplyRemoteNote(&remote))
	again, err := s.GetNoteByID(local.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Version, again.Version)
	assert.Equal(t, stored.Content, again.Content)
}

func TestApplyRemoteNoteTombstone(t *testing.T) {
	s := openTestStore(t)

	note := models.NewNote("Remote delete", uuid.Nil, uuid.New())
	require.NoError(t, s.UpsertNote(note))

	tomb := *note
	tomb.Version = 5
	tomb.IsDeleted = true
	tomb.UpdatedAt = note.UpdatedAt + 10
	require.NoError(t, s.ApplyRemoteNote(&tomb))

	_, err := s.GetNoteByID(note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestGetSyncDeltaWindow(t *testing.T) {
	s := openTestStore(t)
	wsID := uuid.New()

	old := models.NewNote("Old", uuid.Nil, wsID)
	old.CreatedAt = 1000
	old.UpdatedAt = 1000
	require.NoError(t, s.UpsertNote(old))

	fresh := models.NewNote("Fresh", uuid.Nil, wsID)
	fresh.CreatedAt = 2000
	fresh.UpdatedAt = 2000
	require.NoError(t, s.UpsertNote(fresh))

	delta, err := s.GetSyncDelta(1500)
	require.NoError(t, err)
	require.Len(t, delta.Notes, 1)
	assert.Equal(t, fresh.ID, delta.Notes[0].ID)

	// The boundary is exclusive: a record at exactly the cursor is synced.
	delta, err = s.GetSyncDelta(2000)
	require.NoError(t, err)
	assert.Empty(t, delta.Notes)
}
