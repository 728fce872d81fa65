// ABOUTME: Workspace export/import as a directory tree of markdown files.
// ABOUTME: Folder nesting maps to subdirectories, note titles to filenames.

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

// ExportWorkspace writes the workspace as <destPath>/<workspace name>/ with
// one .md file per note and one subdirectory per folder.
func (s *Store) ExportWorkspace(workspaceID uuid.UUID, destPath string) error {
	workspaces, err := s.GetWorkspaces()
	if err != nil {
		return err
	}
	var ws *models.Workspace
	for _, w := range workspaces {
		if w.ID == workspaceID {
			ws = w
			break
		}
	}
	if ws == nil {
		return ErrWorkspaceNotFound
	}

	folders, err := s.GetFolders()
	if err != nil {
		return err
	}
	notes, err := s.GetNotes()
	if err != nil {
		return err
	}

	root := filepath.Join(destPath, sanitizeName(ws.Name))
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	dirs := map[uuid.UUID]string{uuid.Nil: root}
	// Parents precede children because GetFolders orders by created_at and
	// a folder cannot be created under a not-yet-existing parent; walk twice
	// anyway to be safe against reparenting.
	for range 2 {
		for _, f := range folders {
			if f.WorkspaceID != workspaceID {
				continue
			}
			parentDir, ok := dirs[f.ParentID]
			if !ok {
				continue
			}
			dir := filepath.Join(parentDir, sanitizeName(f.Name))
			dirs[f.ID] = dir
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create folder directory: %w", err)
			}
		}
	}

	for _, n := range notes {
		if n.WorkspaceID != workspaceID {
			continue
		}
		dir, ok := dirs[n.FolderID]
		if !ok {
			dir = root
		}
		path := filepath.Join(dir, sanitizeName(n.Title)+".md")
		if err := os.WriteFile(path, []byte(n.Content), 0644); err != nil {
			return fmt.Errorf("write note %q: %w", n.Title, err)
		}
	}
	return nil
}

// ImportWorkspace creates a new workspace from a directory of markdown
// files. Subdirectories become folders; name defaults to the directory name.
func (s *Store) ImportWorkspace(srcPath, name string) (uuid.UUID, error) {
	info, err := os.Stat(srcPath)
	if err != nil {
		return uuid.Nil, fmt.Errorf("stat import path: %w", err)
	}
	if !info.IsDir() {
		return uuid.Nil, fmt.Errorf("import path %q is not a directory", srcPath)
	}

	if name == "" {
		name = filepath.Base(srcPath)
	}
	ws := models.NewWorkspace(name, "")
	if err := s.UpsertWorkspace(ws); err != nil {
		return uuid.Nil, err
	}

	if err := s.importDir(srcPath, uuid.Nil, ws.ID, 0); err != nil {
		return uuid.Nil, err
	}
	return ws.ID, nil
}

// importDir recurses at most two folder levels deep, matching the tree's
// maximum nesting; deeper directories are flattened into their parent.
func (s *Store) importDir(dir string, parentID, workspaceID uuid.UUID, depth int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			target := parentID
			if depth < 2 {
				folder := models.NewFolder(entry.Name(), parentID, workspaceID)
				if err := s.UpsertFolder(folder); err != nil {
					return err
				}
				target = folder.ID
			}
			if err := s.importDir(path, target, workspaceID, depth+1); err != nil {
				return err
			}
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(path) //nolint:gosec // User-specified import path is expected behavior
		if err != nil {
			return err
		}
		note := models.NewNote(strings.TrimSuffix(entry.Name(), ".md"), parentID, workspaceID)
		note.Content = string(data)
		if err := s.UpsertNote(note); err != nil {
			return err
		}
	}
	return nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	return replacer.Replace(name)
}
