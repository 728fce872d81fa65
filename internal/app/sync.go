// ABOUTME: Sync orchestration for the app: flush drafts, run the engine,
// ABOUTME: then swap the merged working set into memory.

package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	synceng "github.com/lumenote/lumenote/internal/sync"
)

// PerformSync flushes pending drafts, runs one sync exchange, and replaces
// the in-memory working set with the merged result. An unconfigured engine
// is a silent no-op.
func (a *App) PerformSync(ctx context.Context) (*synceng.Result, error) {
	if err := a.drafts.FlushAll(); err != nil {
		return nil, err
	}

	result, err := a.engine.PerformSync(ctx)
	if err != nil {
		if errors.Is(err, synceng.ErrNotConfigured) {
			return nil, nil
		}
		return nil, err
	}

	a.mu.Lock()
	a.workspaces = result.Workspaces
	a.folders = result.Folders
	a.notes = result.Notes
	for _, f := range a.folders {
		f.IsExpanded = true
	}
	if a.findWorkspace(a.activeWorkspaceID) == nil {
		a.activeWorkspaceID = uuid.Nil
		if len(a.workspaces) > 0 {
			a.activeWorkspaceID = a.workspaces[0].ID
		}
	}
	if a.activeNoteID != uuid.Nil && a.findNote(a.activeNoteID) == nil {
		// Deleted remotely while open locally.
		a.activeNoteID = uuid.Nil
	}
	a.mu.Unlock()

	return result, nil
}

// ConfigureSync records endpoint and key, then re-derives the unsynced flag
// for the newly configured peer.
func (a *App) ConfigureSync(endpoint, key string) error {
	if err := a.engine.SetConfig(endpoint, key); err != nil {
		return err
	}
	a.recomputeUnsynced()
	return nil
}
