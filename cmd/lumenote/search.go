// ABOUTME: Search command using SQLite FTS5 over note titles and content.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes",
	Long:  `Full-text search across note titles and content. Matches are shown with highlighted snippets.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := application.Search(args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Println("No notes found.")
			return nil
		}
		for _, r := range results {
			fmt.Print(ui.FormatSearchResult(r))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
