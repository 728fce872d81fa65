// ABOUTME: FTS5 full-text search over note titles and content.
// ABOUTME: Returns ranked hits with <mark>-highlighted snippets.

package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lumenote/lumenote/internal/models"
)

const searchLimit = 20

// SearchNotes runs a prefix-matching full-text query. Tombstoned notes are
// filtered out even though the FTS index still carries their last content.
func (s *Store) SearchNotes(query string) ([]*models.SearchResult, error) {
	// Treat the input as a quoted phrase with prefix matching so FTS5
	// operator characters in user text cannot break the query.
	ftsQuery := `"` + strings.ReplaceAll(query, `"`, `""`) + `"*`

	rows, err := s.db.Query(
		`SELECT n.id, n.title, snippet(notes_fts, 1, '<mark>', '</mark>', '...', 20) AS snippet
		 FROM notes_fts
		 JOIN notes n ON notes_fts.rowid = n.rowid
		 WHERE notes_fts MATCH ? AND n.is_deleted = 0
		 ORDER BY rank
		 LIMIT ?`,
		ftsQuery, searchLimit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []*models.SearchResult
	for rows.Next() {
		var idStr string
		result := &models.SearchResult{}
		if err := rows.Scan(&idStr, &result.Title, &result.Snippet); err != nil {
			return nil, err
		}
		if result.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid note ID in database: %w", err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}
