// ABOUTME: Note model representing a markdown note with metadata.
// ABOUTME: FolderID of uuid.Nil means the note sits at workspace root.

package models

import (
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID          uuid.UUID
	Title       string
	Content     string
	FolderID    uuid.UUID // uuid.Nil = workspace root
	WorkspaceID uuid.UUID
	Color       string
	CreatedAt   int64 // epoch millis
	UpdatedAt   int64
	Version     int64
	IsDeleted   bool
}

func NewNote(title string, folderID, workspaceID uuid.UUID) *Note {
	now := time.Now().UnixMilli()
	return &Note{
		ID:          uuid.New(),
		Title:       title,
		FolderID:    folderID,
		WorkspaceID: workspaceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UnixMilli()
}
