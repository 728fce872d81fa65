// ABOUTME: Tests for workspace export and import as markdown trees.

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenote/lumenote/internal/models"
)

func TestExportWorkspaceWritesTree(t *testing.T) {
	s := openTestStore(t)

	ws := models.NewWorkspace("My Notes", "")
	require.NoError(t, s.UpsertWorkspace(ws))

	folder := models.NewFolder("Ideas", uuid.Nil, ws.ID)
	require.NoError(t, s.UpsertFolder(folder))

	rootNote := models.NewNote("Readme", uuid.Nil, ws.ID)
	rootNote.Content = "top level"
	require.NoError(t, s.UpsertNote(rootNote))

	nested := models.NewNote("Spark", folder.ID, ws.ID)
	nested.Content = "an idea"
	require.NoError(t, s.UpsertNote(nested))

	dest := t.TempDir()
	require.NoError(t, s.ExportWorkspace(ws.ID, dest))

	data, err := os.ReadFile(filepath.Join(dest, "My Notes", "Readme.md"))
	require.NoError(t, err)
	assert.Equal(t, "top level", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "My Notes", "Ideas", "Spark.md"))
	require.NoError(t, err)
	assert.Equal(t, "an idea", string(data))
}

func TestExportWorkspaceUnknownID(t *testing.T) {
	s := openTestStore(t)
	err := s.ExportWorkspace(uuid.New(), t.TempDir())
	assert.ErrorIs(t, err, ErrWorkspaceNotFound)
}

func TestImportWorkspaceRoundTrip(t *testing.T) {
	s := openTestStore(t)

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "Top.md"), []byte("root note"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Deep", "Deeper", "Deepest"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Deep", "Inner.md"), []byte("nested"), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(src, "Deep", "Deeper", "Deepest", "Flat.md"), []byte("flattened"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "skip.txt"), []byte("ignored"), 0644))

	wsID, err := s.ImportWorkspace(src, "Imported")
	require.NoError(t, err)

	folders, err := s.GetFolders()
	require.NoError(t, err)
	// Deep and Deeper become folders; Deepest exceeds the nesting limit.
	assert.Len(t, folders, 2)

	notes, err := s.GetNotes()
	require.NoError(t, err)
	require.Len(t, notes, 3)
	for _, n := range notes {
		assert.Equal(t, wsID, n.WorkspaceID)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a/b", "a-b"},
		{"  ", "untitled"},
		{"c:d\\e", "c-d-e"},
	}
	for _, tt := range tests {
		if got := sanitizeName(tt.in); got != tt.want {
			t.Errorf("sanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
