// ABOUTME: Store operations for folders.
// ABOUTME: Mirrors the note paths: versioned upserts, tombstoned deletes.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

var ErrFolderNotFound = errors.New("folder not found")

const folderColumns = `id, name, parent_id, workspace_id, color, created_at, updated_at, version, is_deleted`

func scanFolder(scan func(...any) error) (*models.Folder, error) {
	folder := &models.Folder{}
	var idStr string
	var parentID, workspaceID sql.NullString
	if err := scan(&idStr, &folder.Name, &parentID, &workspaceID, &folder.Color,
		&folder.CreatedAt, &folder.UpdatedAt, &folder.Version, &folder.IsDeleted); err != nil {
		return nil, err
	}
	var err error
	if folder.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid folder ID in database: %w", err)
	}
	if folder.ParentID, err = parseNullableID(parentID); err != nil {
		return nil, fmt.Errorf("invalid parent ID in database: %w", err)
	}
	if folder.WorkspaceID, err = parseNullableID(workspaceID); err != nil {
		return nil, fmt.Errorf("invalid workspace ID in database: %w", err)
	}
	return folder, nil
}

func (s *Store) GetFolders() ([]*models.Folder, error) {
	rows, err := s.db.Query(
		`SELECT ` + folderColumns + ` FROM folders WHERE is_deleted = 0 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var folders []*models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows.Scan)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (s *Store) UpsertFolder(folder *models.Folder) error {
	_, err := s.db.Exec(
		`INSERT INTO folders (`+folderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 1, 0)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    parent_id = excluded.parent_id,
		    workspace_id = excluded.workspace_id,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = folders.version + 1,
		    is_deleted = 0`,
		folder.ID.String(), folder.Name, nullableID(folder.ParentID),
		nullableID(folder.WorkspaceID), folder.Color, folder.CreatedAt, folder.UpdatedAt,
	)
	return err
}

func (s *Store) DeleteFolder(id uuid.UUID, now int64) error {
	result, err := s.db.Exec(
		`UPDATE folders SET is_deleted = 1, updated_at = ?, version = version + 1
		 WHERE id = ? AND is_deleted = 0`, now, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFolderNotFound
	}
	return nil
}

func (s *Store) ApplyRemoteFolder(folder *models.Folder) error {
	_, err := s.db.Exec(
		`INSERT INTO folders (`+folderColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    parent_id = excluded.parent_id,
		    workspace_id = excluded.workspace_id,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 WHERE excluded.version > folders.version
		    OR (excluded.version = folders.version AND excluded.updated_at > folders.updated_at)`,
		folder.ID.String(), folder.Name, nullableID(folder.ParentID),
		nullableID(folder.WorkspaceID), folder.Color, folder.CreatedAt, folder.UpdatedAt,
		folder.Version, folder.IsDeleted,
	)
	return err
}
