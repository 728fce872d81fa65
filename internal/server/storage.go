// ABOUTME: Server-side storage for the sync endpoint, partitioned by key.
// ABOUTME: Versioned last-writer-wins upserts and bounded delta queries.

package server

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumenote/lumenote/internal/sync"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id TEXT NOT NULL,
    sync_key TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    folder_id TEXT,
    workspace_id TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    version INTEGER NOT NULL DEFAULT 1,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (id, sync_key)
);

CREATE TABLE IF NOT EXISTS folders (
    id TEXT NOT NULL,
    sync_key TEXT NOT NULL,
    name TEXT NOT NULL,
    parent_id TEXT,
    workspace_id TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    version INTEGER NOT NULL DEFAULT 1,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (id, sync_key)
);

CREATE TABLE IF NOT EXISTS workspaces (
    id TEXT NOT NULL,
    sync_key TEXT NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    version INTEGER NOT NULL DEFAULT 1,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (id, sync_key)
);

CREATE INDEX IF NOT EXISTS idx_notes_key_updated ON notes(sync_key, updated_at);
CREATE INDEX IF NOT EXISTS idx_folders_key_updated ON folders(sync_key, updated_at);
CREATE INDEX IF NOT EXISTS idx_workspaces_key_updated ON workspaces(sync_key, updated_at);
`

type Storage struct {
	db *sql.DB
}

func OpenStorage(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// lwwClause guards every upsert: the incoming record only wins when its
// version is strictly newer, with updated_at breaking version ties.
const lwwClause = `WHERE excluded.version > %[1]s.version
   OR (excluded.version = %[1]s.version AND excluded.updated_at > %[1]s.updated_at)`

func (s *Storage) UpsertNote(key string, rec sync.NoteRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO notes (id, sync_key, title, content, folder_id, workspace_id, created_at, updated_at, version, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id, sync_key) DO UPDATE SET
		    title = excluded.title,
		    content = excluded.content,
		    folder_id = excluded.folder_id,
		    workspace_id = excluded.workspace_id,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 `+fmt.Sprintf(lwwClause, "notes"),
		rec.ID, key, rec.Title, rec.Content, strPtr(rec.FolderID), rec.WorkspaceID,
		rec.CreatedAt, rec.UpdatedAt, rec.Version, rec.IsDeleted,
	)
	return err
}

func (s *Storage) UpsertFolder(key string, rec sync.FolderRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO folders (id, sync_key, name, parent_id, workspace_id, color, created_at, updated_at, version, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id, sync_key) DO UPDATE SET
		    name = excluded.name,
		    parent_id = excluded.parent_id,
		    workspace_id = excluded.workspace_id,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 `+fmt.Sprintf(lwwClause, "folders"),
		rec.ID, key, rec.Name, strPtr(rec.ParentID), rec.WorkspaceID, rec.Color,
		rec.CreatedAt, rec.UpdatedAt, rec.Version, rec.IsDeleted,
	)
	return err
}

func (s *Storage) UpsertWorkspace(key string, rec sync.WorkspaceRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO workspaces (id, sync_key, name, color, created_at, updated_at, version, is_deleted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id, sync_key) DO UPDATE SET
		    name = excluded.name,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 `+fmt.Sprintf(lwwClause, "workspaces"),
		rec.ID, key, rec.Name, rec.Color,
		rec.CreatedAt, rec.UpdatedAt, rec.Version, rec.IsDeleted,
	)
	return err
}

// Delta returns every record in (since, until) for the key. The upper bound
// is the server time stamped on the response, so records written after it
// land in the client's next window instead of being skipped.
func (s *Storage) Delta(key string, since, until int64) (*sync.Response, error) {
	resp := &sync.Response{ServerTime: until}

	rows, err := s.db.Query(
		`SELECT id, title, content, folder_id, workspace_id, created_at, updated_at, version, is_deleted
		 FROM notes WHERE sync_key = ? AND updated_at > ? AND updated_at < ?`,
		key, since, until)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var rec sync.NoteRecord
		var folderID sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Content, &folderID, &rec.WorkspaceID,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.Version, &rec.IsDeleted); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if folderID.Valid {
			rec.FolderID = &folderID.String
		}
		resp.Notes = append(resp.Notes, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(
		`SELECT id, name, parent_id, workspace_id, color, created_at, updated_at, version, is_deleted
		 FROM folders WHERE sync_key = ? AND updated_at > ? AND updated_at < ?`,
		key, since, until)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var rec sync.FolderRecord
		var parentID sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Name, &parentID, &rec.WorkspaceID, &rec.Color,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.Version, &rec.IsDeleted); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if parentID.Valid {
			rec.ParentID = &parentID.String
		}
		resp.Folders = append(resp.Folders, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(
		`SELECT id, name, color, created_at, updated_at, version, is_deleted
		 FROM workspaces WHERE sync_key = ? AND updated_at > ? AND updated_at < ?`,
		key, since, until)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var rec sync.WorkspaceRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Color,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.Version, &rec.IsDeleted); err != nil {
			_ = rows.Close()
			return nil, err
		}
		resp.Workspaces = append(resp.Workspaces, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return resp, nil
}

func strPtr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}
