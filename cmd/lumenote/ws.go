// ABOUTME: Workspace subcommands: list, add, rename, color, and rm.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var wsCmd = &cobra.Command{
	Use:   "ws",
	Short: "Manage workspaces",
	Long: `Workspaces are the top-level containers for folders and notes.

Commands:
  list    - Show all workspaces
  add     - Create a workspace
  rename  - Rename a workspace
  color   - Set a workspace color
  rm      - Delete a workspace and its contents`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return wsListCmd.RunE(cmd, args)
	},
}

var wsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		workspaces := application.Workspaces()
		if len(workspaces) == 0 {
			fmt.Println("No workspaces. Create one with `lumenote ws add <name>`.")
			return nil
		}
		active := application.ActiveWorkspaceID()
		for _, ws := range workspaces {
			fmt.Print(ui.FormatWorkspaceListItem(ws, ws.ID == active))
		}
		return nil
	},
}

var wsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorFlag, _ := cmd.Flags().GetString("color")
		ws, err := application.AddWorkspace(args[0], colorFlag)
		if err != nil {
			return fmt.Errorf("failed to create workspace: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Created workspace %s", ui.ShortID(ws.ID))))
		return nil
	},
}

var wsRenameCmd = &cobra.Command{
	Use:   "rename <workspace> <new-name>",
	Short: "Rename a workspace",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(args[0])
		if err != nil {
			return err
		}
		if err := application.RenameWorkspace(ws.ID, args[1]); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Renamed workspace %s", ui.ShortID(ws.ID))))
		return nil
	},
}

var wsColorCmd = &cobra.Command{
	Use:   "color <workspace> <color>",
	Short: "Set a workspace color",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(args[0])
		if err != nil {
			return err
		}
		if err := application.RecolorWorkspace(ws.ID, args[1]); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Updated workspace %s", ui.ShortID(ws.ID))))
		return nil
	},
}

var wsRmCmd = &cobra.Command{
	Use:   "rm <workspace>",
	Short: "Delete a workspace",
	Long:  `Delete a workspace and everything inside it. All records are tombstoned so the deletion syncs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := resolveWorkspace(args[0])
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force && !confirm(fmt.Sprintf("Delete workspace %q and ALL its contents?", ws.Name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := application.DeleteWorkspace(ws.ID); err != nil {
			return fmt.Errorf("failed to delete workspace: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Deleted workspace %s", ui.ShortID(ws.ID))))
		return nil
	},
}

func init() {
	wsAddCmd.Flags().String("color", "", "workspace color")
	wsRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	wsCmd.AddCommand(wsListCmd)
	wsCmd.AddCommand(wsAddCmd)
	wsCmd.AddCommand(wsRenameCmd)
	wsCmd.AddCommand(wsColorCmd)
	wsCmd.AddCommand(wsRmCmd)
	rootCmd.AddCommand(wsCmd)
}
