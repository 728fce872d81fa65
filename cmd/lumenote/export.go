// ABOUTME: Export and import commands: workspaces as markdown trees on disk.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <dest-dir>",
	Short: "Export the active workspace",
	Long:  `Write the active workspace to a directory tree of markdown files, one directory per folder.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wsID := application.ActiveWorkspaceID()
		if err := application.Export(wsID, args[0]); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Exported workspace to %s", args[0])))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <src-dir>",
	Short: "Import a workspace from markdown files",
	Long:  `Create a new workspace from a directory tree of markdown files. Directories deeper than two levels are flattened.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = filepath.Base(args[0])
		}
		id, err := application.Import(args[0], name)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Imported workspace %s", ui.ShortID(id))))
		return nil
	},
}

func init() {
	importCmd.Flags().String("name", "", "workspace name (defaults to the directory name)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
