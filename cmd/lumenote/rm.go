// ABOUTME: Remove command for deleting notes and folders.
// ABOUTME: Deletions are tombstones so they propagate through sync.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <note>",
	Short: "Delete a note",
	Long:  `Delete a note. The record is tombstoned so the deletion syncs to other devices.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := resolveNote(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete note %q?", note.Title)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := application.DeleteNote(note.ID); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Deleted note %s", ui.ShortID(note.ID))))
		return nil
	},
}

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <folder>",
	Short: "Delete a folder",
	Long:  `Delete a folder. Its notes move to the workspace root and its subfolders move up one level.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := resolveFolder(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete folder %q? Its contents are kept.", folder.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := application.DeleteFolder(folder.ID); err != nil {
			return fmt.Errorf("failed to delete folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Deleted folder %s", ui.ShortID(folder.ID))))
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s (y/N) ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rmdirCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(rmdirCmd)
}
