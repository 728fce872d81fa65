// ABOUTME: Watermark delta queries feeding the sync engine.
// ABOUTME: Includes tombstones so deletions propagate to peers.

package store

import "github.com/lumenote/lumenote/internal/models"

// GetSyncDelta returns every record with updated_at strictly greater than
// since. Tombstones are included on purpose.
func (s *Store) GetSyncDelta(since int64) (*models.Delta, error) {
	delta := &models.Delta{}

	rows, err := s.db.Query(
		`SELECT `+noteColumns+` FROM notes WHERE updated_at > ?`, since)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		delta.Notes = append(delta.Notes, note)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = s.db.Query(
		`SELECT `+folderColumns+` FROM folders WHERE updated_at > ?`, since)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		folder, err := scanFolder(rows.Scan)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		delta.Folders = append(delta.Folders, folder)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	rows, err = s.db.Query(
		`SELECT `+workspaceColumns+` FROM workspaces WHERE updated_at > ?`, since)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		ws, err := scanWorkspace(rows.Scan)
		if err != nil {
			return nil, err
		}
		delta.Workspaces = append(delta.Workspaces, ws)
	}
	return delta, rows.Err()
}
