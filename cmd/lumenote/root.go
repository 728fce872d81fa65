// ABOUTME: Root command wiring shared state for every subcommand.
// ABOUTME: Opens the store, loads sync config, and builds the app container.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/app"
	"github.com/lumenote/lumenote/internal/models"
	"github.com/lumenote/lumenote/internal/store"
	"github.com/lumenote/lumenote/internal/sync"
	"github.com/lumenote/lumenote/internal/ui"
)

var (
	st          *store.Store
	application *app.App
	logger      zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lumenote",
	Short: "Offline-first markdown notes with sync",
	Long: `lumenote keeps markdown notes in workspaces and folders, stored
locally in SQLite, with optional delta sync against a lumenote-syncd peer.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()

		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = store.DefaultPath()
		}
		var err error
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		cfg, err := sync.LoadConfig()
		if err != nil {
			return fmt.Errorf("load sync config: %w", err)
		}

		application = app.New(st, cfg, logger)
		if err := application.Load(); err != nil {
			return fmt.Errorf("load state: %w", err)
		}

		wsFlag, _ := cmd.Flags().GetString("workspace")
		if wsFlag != "" {
			ws, err := resolveWorkspace(wsFlag)
			if err != nil {
				return err
			}
			return application.SetActiveWorkspace(ws.ID)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application != nil {
			if err := application.Close(); err != nil {
				fmt.Fprintln(os.Stderr, ui.Error(fmt.Sprintf("flush drafts: %v", err)))
			}
		}
		if st != nil {
			return st.Close()
		}
		return nil
	},
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database")
	rootCmd.PersistentFlags().StringP("workspace", "w", "", "workspace name or id prefix")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	color.NoColor = color.NoColor || os.Getenv("NO_COLOR") != ""
}

// resolveWorkspace matches by exact name first, then by id prefix.
func resolveWorkspace(ref string) (*models.Workspace, error) {
	var prefixMatch *models.Workspace
	for _, ws := range application.Workspaces() {
		if ws.Name == ref {
			return ws, nil
		}
		if strings.HasPrefix(ws.ID.String(), strings.ToLower(ref)) {
			if prefixMatch != nil {
				return nil, fmt.Errorf("workspace prefix %q is ambiguous", ref)
			}
			prefixMatch = ws
		}
	}
	if prefixMatch == nil {
		return nil, fmt.Errorf("no workspace matches %q", ref)
	}
	return prefixMatch, nil
}

// resolveNote matches a note in the active workspace by exact title, then
// by id prefix.
func resolveNote(ref string) (*models.Note, error) {
	wsID := application.ActiveWorkspaceID()
	var prefixMatch *models.Note
	for _, n := range application.Notes() {
		if n.WorkspaceID != wsID {
			continue
		}
		if n.Title == ref {
			return n, nil
		}
		if strings.HasPrefix(n.ID.String(), strings.ToLower(ref)) {
			if prefixMatch != nil {
				return nil, fmt.Errorf("note prefix %q is ambiguous", ref)
			}
			prefixMatch = n
		}
	}
	if prefixMatch == nil {
		return nil, fmt.Errorf("no note matches %q", ref)
	}
	return prefixMatch, nil
}

func resolveFolder(ref string) (*models.Folder, error) {
	wsID := application.ActiveWorkspaceID()
	var prefixMatch *models.Folder
	for _, f := range application.Folders() {
		if f.WorkspaceID != wsID {
			continue
		}
		if f.Name == ref {
			return f, nil
		}
		if strings.HasPrefix(f.ID.String(), strings.ToLower(ref)) {
			if prefixMatch != nil {
				return nil, fmt.Errorf("folder prefix %q is ambiguous", ref)
			}
			prefixMatch = f
		}
	}
	if prefixMatch == nil {
		return nil, fmt.Errorf("no folder matches %q", ref)
	}
	return prefixMatch, nil
}

// resolveParent maps a --folder flag to a parent id, uuid.Nil for root.
func resolveParent(ref string) (uuid.UUID, error) {
	if ref == "" || ref == "/" {
		return uuid.Nil, nil
	}
	folder, err := resolveFolder(ref)
	if err != nil {
		return uuid.Nil, err
	}
	return folder.ID, nil
}
