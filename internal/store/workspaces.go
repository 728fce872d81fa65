// ABOUTME: Store operations for workspaces.
// ABOUTME: Same persistence contract as notes and folders.

package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

var ErrWorkspaceNotFound = errors.New("workspace not found")

const workspaceColumns = `id, name, color, created_at, updated_at, version, is_deleted`

func scanWorkspace(scan func(...any) error) (*models.Workspace, error) {
	ws := &models.Workspace{}
	var idStr string
	if err := scan(&idStr, &ws.Name, &ws.Color, &ws.CreatedAt, &ws.UpdatedAt,
		&ws.Version, &ws.IsDeleted); err != nil {
		return nil, err
	}
	var err error
	if ws.ID, err = uuid.Parse(idStr); err != nil {
		return nil, fmt.Errorf("invalid workspace ID in database: %w", err)
	}
	return ws, nil
}

func (s *Store) GetWorkspaces() ([]*models.Workspace, error) {
	rows, err := s.db.Query(
		`SELECT ` + workspaceColumns + ` FROM workspaces WHERE is_deleted = 0 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var workspaces []*models.Workspace
	for rows.Next() {
		ws, err := scanWorkspace(rows.Scan)
		if err != nil {
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}

func (s *Store) UpsertWorkspace(ws *models.Workspace) error {
	_, err := s.db.Exec(
		`INSERT INTO workspaces (`+workspaceColumns+`)
		 VALUES (?, ?, ?, ?, ?, 1, 0)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = workspaces.version + 1,
		    is_deleted = 0`,
		ws.ID.String(), ws.Name, ws.Color, ws.CreatedAt, ws.UpdatedAt,
	)
	return err
}

func (s *Store) DeleteWorkspace(id uuid.UUID, now int64) error {
	result, err := s.db.Exec(
		`UPDATE workspaces SET is_deleted = 1, updated_at = ?, version = version + 1
		 WHERE id = ? AND is_deleted = 0`, now, id.String())
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWorkspaceNotFound
	}
	return nil
}

func (s *Store) ApplyRemoteWorkspace(ws *models.Workspace) error {
	_, err := s.db.Exec(
		`INSERT INTO workspaces (`+workspaceColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		    name = excluded.name,
		    color = excluded.color,
		    updated_at = excluded.updated_at,
		    version = excluded.version,
		    is_deleted = excluded.is_deleted
		 WHERE excluded.version > workspaces.version
		    OR (excluded.version = workspaces.version AND excluded.updated_at > workspaces.updated_at)`,
		ws.ID.String(), ws.Name, ws.Color, ws.CreatedAt, ws.UpdatedAt,
		ws.Version, ws.IsDeleted,
	)
	return err
}
