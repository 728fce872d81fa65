// ABOUTME: Store operations for notes.
// ABOUTME: Local upserts bump version; deletes write tombstones for sync.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

var ErrNoteNotFound = errors.New("note not found")

const noteColumns = `id, title, content, folder_id, workspace_id, color, created_at, updated_at, version, is_deleted`

func scanNote(scan func(...any) error) (*models.Note, error) {
	note := &models.Note{}
	var idStr string
	var folderID, workspaceID sql.NullString
	if err := scan(&idStr, &note.Title, &note.Content, &folderID, &workspaceID,
		&note.Color, &note.CreatedAt, &note.UpdatedAt, &note.Version, &note.IsDeleted); err != nil {
		return nil, err
	}
	var err error
	if note.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid note ID in database: %w", err)
	}
	if note.FolderID, err = parseNullableID(folderID); err != nil {
		return nil, fmt.Errorf("invalid folder ID in database: %w", err)
	}
	if note.WorkspaceID, err = parseNullableID(workspaceID); err != nil {
		return nil, fmt.Errorf("invalid workspace ID in database: %w", err)
	}
	return note, nil
}

// GetNotes returns all live notes; tombstoned records are excluded.
func (s *Store) GetNotes() ([]*models.Note, error) {
	rows, err := s.db.Query(
		`SELECT ` + noteColumns + ` FROM notes WHERE is_deleted = 0 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func (s *Store) GetNoteByID(id uuid.UUID) (*models.Note, error) {
	row := s.db.QueryRow(
		`SELECT `+noteColumns+` FROM notes WHERE id = ? AND is_deleted = 0`, id.String())
	note, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	return note, err
}

// UpsertNote persists a locally-originated note. The store owns the version
// counter: inserts start at 1, updates increment the stored value.
func (s *Store) UpsertNote(note *models.Note) error {
	_, err := s.db.Exec(
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, 0)
		 ON CONFLICT(id) DO UPDATE SET
		    title = excluded.title,
		    content = excluded.content,
		    folder_id = excluded.folder_id,
		    workspace_id = excluded.workspace_id,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = notes.version + 1,
		    is_deleted = 0`,
		note.ID.String(), note.Title, note.Content, nullableID(note.FolderID),
		nullableID(note.WorkspaceID), note.Color, note.CreatedAt, note.UpdatedAt,
	)
	return err
}

// DeleteNote writes a tombstone so the deletion propagates through sync.
func (s *Store) DeleteNote(id uuid.UUID, now int64) error {
	result, err := s.db.Exec(
		`UPDATE notes SET is_deleted = 1, updated_at = ?, version = version + 1
		 WHERE id = ? AND is_deleted = 0`, now, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// ApplyRemoteNote upserts a record originating from the remote peer.
// The remote version is taken verbatim and only wins when strictly newer
// (version first, updated_at as tiebreak), so stale deltas never regress
// local state and re-application is idempotent.
func (s *Store) ApplyRemoteNote(note *models.Note) error {
	_, err := s.db.Exec(
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    title = excluded.title,
		    content = excluded.content,
		    folder_id = excluded.folder_id,
		    workspace_id = excluded.workspace_id,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 WHERE excluded.version > notes.version
		    OR (excluded.version = notes.version AND excluded.updated_at > notes.updated_at)`,
		note.ID.String(), note.Title, note.Content, nullableID(note.FolderID),
		nullableID(note.WorkspaceID), note.Color, note.CreatedAt, note.UpdatedAt,
		note.Version, note.IsDeleted,
	)
	return err
}
