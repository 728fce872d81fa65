// ABOUTME: Workspace model: the top-level container for folders and notes.

package models

import (
	"time"

	"github.com/google/uuid"
)

type Workspace struct {
	ID        uuid.UUID
	Name      string
	Color     string
	CreatedAt int64 // epoch millis
	UpdatedAt int64
	Version   int64
	IsDeleted bool
}

func NewWorkspace(name, color string) *Workspace {
	now := time.Now().UnixMilli()
	return &Workspace{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *Workspace) Touch() {
	w.UpdatedAt = time.Now().UnixMilli()
}
