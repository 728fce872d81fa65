// ABOUTME: Move command for reparenting notes and folders.
// ABOUTME: Validates depth and cycle rules before applying the move.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var mvCmd = &cobra.Command{
	Use:   "mv <item> <destination>",
	Short: "Move a note or folder",
	Long: `Move a note or folder into a destination folder, or to the workspace
root with '/'. Moves that would nest folders too deeply, or place a folder
inside itself, are rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		destID, err := resolveParent(args[1])
		if err != nil {
			return err
		}

		if folder, err := resolveFolder(args[0]); err == nil {
			if err := application.MoveFolder(folder.ID, destID); err != nil {
				return fmt.Errorf("failed to move folder: %w", err)
			}
			fmt.Println(ui.Success(fmt.Sprintf("Moved folder %s", ui.ShortID(folder.ID))))
			return nil
		}

		note, err := resolveNote(args[0])
		if err != nil {
			return err
		}
		if err := application.MoveNote(note.ID, destID); err != nil {
			return fmt.Errorf("failed to move note: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Moved note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
