// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note content in $EDITOR for modification.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <note>",
	Short: "Edit a note",
	Long:  `Open a note in $EDITOR for editing. The note is matched by title or id prefix.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := resolveNote(args[0])
		if err != nil {
			return err
		}

		if err := application.SetActiveNote(note.ID); err != nil {
			return err
		}

		newContent, err := openEditor(note.Content)
		if err != nil {
			return fmt.Errorf("failed to open editor: %w", err)
		}

		if newContent == note.Content {
			fmt.Println("No changes made.")
			return nil
		}

		if err := application.EditContent(note.ID, newContent); err != nil {
			return err
		}
		if err := application.SaveActive(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(note.ID))))
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <note> <new-title>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := resolveNote(args[0])
		if err != nil {
			return err
		}
		if err := application.RenameNote(note.ID, args[1]); err != nil {
			return err
		}
		if err := application.Drafts().Flush(note.ID); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Renamed note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(renameCmd)
}
