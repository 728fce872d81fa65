// ABOUTME: Folder model for the workspace hierarchy.
// ABOUTME: ParentID of uuid.Nil means the folder sits at workspace root.

package models

import (
	"time"

	"github.com/google/uuid"
)

type Folder struct {
	ID          uuid.UUID
	Name        string
	ParentID    uuid.UUID // uuid.Nil = workspace root
	WorkspaceID uuid.UUID
	Color       string
	CreatedAt   int64 // epoch millis
	UpdatedAt   int64
	Version     int64
	IsDeleted   bool

	// IsExpanded is presentation state only; it is never persisted or synced.
	IsExpanded bool
}

func NewFolder(name string, parentID, workspaceID uuid.UUID) *Folder {
	now := time.Now().UnixMilli()
	return &Folder{
		ID:          uuid.New(),
		Name:        name,
		ParentID:    parentID,
		WorkspaceID: workspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsExpanded:  true,
	}
}

func (f *Folder) Touch() {
	f.UpdatedAt = time.Now().UnixMilli()
}
