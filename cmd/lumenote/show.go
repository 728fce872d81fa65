// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown via glamour unless --raw is given.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <note>",
	Short: "Show a note",
	Long:  `Display a note's content rendered as markdown. The note is matched by title or id prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := resolveNote(args[0])
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")

		fmt.Print(ui.FormatNoteHeader(note))
		if raw {
			fmt.Println(note.Content)
			return nil
		}

		rendered, err := ui.FormatNoteContent(note.Content)
		if err != nil {
			return fmt.Errorf("failed to render note: %w", err)
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print raw markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
