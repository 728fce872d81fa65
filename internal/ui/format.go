// ABOUTME: Terminal UI formatting for lumenote output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/lumenote/lumenote/internal/models"
	"github.com/lumenote/lumenote/internal/tree"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	idPrefix := note.ID.String()[:6]
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(idPrefix), bold(note.Title)))
	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Updated:"),
		faint(formatMillis(note.UpdatedAt))))

	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(formatMillis(note.CreatedAt))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(formatMillis(note.UpdatedAt))))
	sb.WriteString(Separator())
	return sb.String()
}

// FormatTree renders the workspace hierarchy in visual order: folders
// before notes at each level, collapsed folders hiding their children.
func FormatTree(ix *tree.Index) string {
	var sb strings.Builder

	for _, id := range ix.VisualOrder() {
		item, ok := ix.Item(id)
		if !ok {
			continue
		}
		depth, err := ix.Depth(id)
		if err != nil {
			continue
		}
		indent := strings.Repeat("  ", depth)
		idPrefix := faint(id.String()[:6])
		if item.Kind == models.KindFolder {
			marker := "▸"
			if item.Folder.IsExpanded {
				marker = "▾"
			}
			sb.WriteString(fmt.Sprintf("  %s %s%s %s\n",
				idPrefix, indent, yellow(marker), bold(item.Folder.Name)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s %s· %s\n",
				idPrefix, indent, item.Note.Title))
		}
	}

	return sb.String()
}

func FormatWorkspaceListItem(ws *models.Workspace, active bool) string {
	marker := " "
	if active {
		marker = cyan("*")
	}
	return fmt.Sprintf("%s %s  %s\n", marker, faint(ws.ID.String()[:6]), bold(ws.Name))
}

// FormatSearchResult rewrites the FTS highlight markers into bold spans.
func FormatSearchResult(r *models.SearchResult) string {
	snippet := strings.ReplaceAll(r.Snippet, "<mark>", "\x1b[1m")
	snippet = strings.ReplaceAll(snippet, "</mark>", "\x1b[0m")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(r.ID.String()[:6]), bold(r.Title)))
	sb.WriteString(fmt.Sprintf("         %s\n", snippet))
	return sb.String()
}

func FormatSyncStatus(configured bool, endpoint string, lastSyncedAt int64, hasUnsynced bool) string {
	var sb strings.Builder

	if !configured {
		sb.WriteString(faint("Sync is not configured. Run `lumenote sync configure`.\n"))
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Endpoint:"), endpoint))
	if lastSyncedAt == 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Last sync:"), faint("never")))
	} else {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Last sync:"), formatMillis(lastSyncedAt)))
	}
	if hasUnsynced {
		sb.WriteString(yellow("Local changes pending sync.\n"))
	} else {
		sb.WriteString(faint("Up to date.\n"))
	}
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

// ShortID is the six character prefix shown next to items in listings.
func ShortID(id uuid.UUID) string {
	return id.String()[:6]
}
