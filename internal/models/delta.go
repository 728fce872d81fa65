// ABOUTME: Delta and search result types exchanged with the record store.
// ABOUTME: A delta carries every record changed after a watermark, tombstones included.

package models

import "github.com/google/uuid"

type Delta struct {
	Notes      []*Note
	Folders    []*Folder
	Workspaces []*Workspace
}

func (d *Delta) Empty() bool {
	return len(d.Notes) == 0 && len(d.Folders) == 0 && len(d.Workspaces) == 0
}

// SearchResult is one full-text search hit. Snippet contains the matched
// excerpt with <mark> highlighting as produced by the store.
type SearchResult struct {
	ID      uuid.UUID
	Title   string
	Snippet string
}
