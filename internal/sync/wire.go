// ABOUTME: Wire types for the /sync exchange, shared with the server.
// ABOUTME: Snake_case JSON; parent ids are null at workspace root.

package sync

import (
	"github.com/google/uuid"
	"github.com/lumenote/lumenote/internal/models"
)

type NoteRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	FolderID    *string `json:"folder_id"`
	WorkspaceID string  `json:"workspace_id"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
	Version     int64   `json:"version"`
	IsDeleted   bool    `json:"is_deleted"`
}

type FolderRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	ParentID    *string `json:"parent_id"`
	WorkspaceID string  `json:"workspace_id"`
	Color       string  `json:"color,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
	Version     int64   `json:"version"`
	IsDeleted   bool    `json:"is_deleted"`
}

type WorkspaceRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	Version   int64  `json:"version"`
	IsDeleted bool   `json:"is_deleted"`
}

type Request struct {
	LastSyncTime int64             `json:"last_sync_time"`
	Notes        []NoteRecord      `json:"notes"`
	Folders      []FolderRecord    `json:"folders"`
	Workspaces   []WorkspaceRecord `json:"workspaces"`
}

type Response struct {
	ServerTime int64             `json:"server_time"`
	Notes      []NoteRecord      `json:"notes"`
	Folders    []FolderRecord    `json:"folders"`
	Workspaces []WorkspaceRecord `json:"workspaces,omitempty"`
}

func idOrNil(id uuid.UUID) *string {
	if id == uuid.Nil {
		return nil
	}
	s := id.String()
	return &s
}

func parseIDPtr(s *string) uuid.UUID {
	if s == nil || *s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func noteToWire(n *models.Note) NoteRecord {
	return NoteRecord{
		ID:          n.ID.String(),
		Title:       n.Title,
		Content:     n.Content,
		FolderID:    idOrNil(n.FolderID),
		WorkspaceID: n.WorkspaceID.String(),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
		Version:     n.Version,
		IsDeleted:   n.IsDeleted,
	}
}

func (r NoteRecord) ToModel() (*models.Note, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	wsID, err := uuid.Parse(r.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return &models.Note{
		ID:          id,
		Title:       r.Title,
		Content:     r.Content,
		FolderID:    parseIDPtr(r.FolderID),
		WorkspaceID: wsID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
		IsDeleted:   r.IsDeleted,
	}, nil
}

func folderToWire(f *models.Folder) FolderRecord {
	return FolderRecord{
		ID:          f.ID.String(),
		Name:        f.Name,
		ParentID:    idOrNil(f.ParentID),
		WorkspaceID: f.WorkspaceID.String(),
		Color:       f.Color,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
		Version:     f.Version,
		IsDeleted:   f.IsDeleted,
	}
}

func (r FolderRecord) ToModel() (*models.Folder, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	wsID, err := uuid.Parse(r.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return &models.Folder{
		ID:          id,
		Name:        r.Name,
		ParentID:    parseIDPtr(r.ParentID),
		WorkspaceID: wsID,
		Color:       r.Color,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
		IsDeleted:   r.IsDeleted,
	}, nil
}

func workspaceToWire(w *models.Workspace) WorkspaceRecord {
	return WorkspaceRecord{
		ID:        w.ID.String(),
		Name:      w.Name,
		Color:     w.Color,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Version:   w.Version,
		IsDeleted: w.IsDeleted,
	}
}

func (r WorkspaceRecord) ToModel() (*models.Workspace, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, err
	}
	return &models.Workspace{
		ID:        id,
		Name:      r.Name,
		Color:     r.Color,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
		IsDeleted: r.IsDeleted,
	}, nil
}
