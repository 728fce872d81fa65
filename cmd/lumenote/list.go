// ABOUTME: List command for displaying the workspace tree.
// ABOUTME: Folders come before notes at each level, in visual order.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes and folders",
	Long:    `Show the active workspace as a tree: folders first, then notes, at each level.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, _ := cmd.Flags().GetBool("flat")

		if application.ActiveWorkspaceID() == uuid.Nil {
			fmt.Println("No workspace. Create one with `lumenote ws add <name>`.")
			return nil
		}

		if flat {
			wsID := application.ActiveWorkspaceID()
			for _, note := range application.Notes() {
				if note.WorkspaceID == wsID {
					fmt.Print(ui.FormatNoteListItem(note))
				}
			}
			return nil
		}

		out := ui.FormatTree(application.Index())
		if out == "" {
			fmt.Println("Workspace is empty.")
			return nil
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	listCmd.Flags().Bool("flat", false, "flat note list instead of a tree")
	rootCmd.AddCommand(listCmd)
}
