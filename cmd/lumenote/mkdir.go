// ABOUTME: Mkdir command for creating folders in the active workspace.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Long:  `Create a folder at the workspace root, or inside --parent. Folders nest at most two levels deep.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parentFlag, _ := cmd.Flags().GetString("parent")
		parentID, err := resolveParent(parentFlag)
		if err != nil {
			return err
		}

		folder, err := application.AddFolder(args[0], parentID)
		if err != nil {
			return fmt.Errorf("failed to create folder: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Created folder %s", ui.ShortID(folder.ID))))
		return nil
	},
}

func init() {
	mkdirCmd.Flags().StringP("parent", "p", "", "parent folder name or id prefix")
	rootCmd.AddCommand(mkdirCmd)
}
