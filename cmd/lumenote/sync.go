// ABOUTME: Sync subcommand: run an exchange, show status, or configure
// ABOUTME: the endpoint and key for a lumenote-syncd peer.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/sync"
	"github.com/lumenote/lumenote/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with a remote peer",
	Long: `Exchange changes with a lumenote-syncd server.

Local changes since the last sync are pushed, remote changes are pulled,
and conflicts resolve to the higher version (last writer wins).

Commands:
  now        - Run one sync exchange (default)
  status     - Show sync configuration and state
  configure  - Set the endpoint and sync key

Examples:
  lumenote sync
  lumenote sync status
  lumenote sync configure --endpoint https://sync.example.com --key s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return syncNowCmd.RunE(cmd, args)
	},
}

var syncNowCmd = &cobra.Command{
	Use:   "now",
	Short: "Run one sync exchange",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := application.PerformSync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if result == nil {
			fmt.Println("Sync is not configured. Run `lumenote sync configure`.")
			return nil
		}
		fmt.Println(ui.Success(fmt.Sprintf("Synced: pushed %d, pulled %d", result.Pushed, result.Pulled)))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := sync.LoadConfig()
		if err != nil {
			return err
		}
		engine := application.Sync()
		fmt.Printf("Config: %s\n", sync.ConfigPath())
		fmt.Print(ui.FormatSyncStatus(cfg.IsConfigured(), cfg.Endpoint,
			engine.LastSyncedAt(), engine.HasUnsyncedChanges()))
		return nil
	},
}

var syncConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the sync peer",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		key, _ := cmd.Flags().GetString("key")
		if endpoint == "" || key == "" {
			return fmt.Errorf("both --endpoint and --key are required")
		}
		if err := application.ConfigureSync(endpoint, key); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println(ui.Success("Sync configured"))
		return nil
	},
}

func init() {
	syncConfigureCmd.Flags().String("endpoint", "", "sync server base URL")
	syncConfigureCmd.Flags().String("key", "", "sync key shared with the server")
	syncCmd.AddCommand(syncNowCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncConfigureCmd)
	rootCmd.AddCommand(syncCmd)
}
