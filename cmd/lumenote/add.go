// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, or $EDITOR.

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/lumenote/lumenote/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a new note with the given title. Content can be provided via --content, --file, or $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		folderFlag, _ := cmd.Flags().GetString("folder")
		emptyFlag, _ := cmd.Flags().GetBool("empty")

		parentID, err := resolveParent(folderFlag)
		if err != nil {
			return err
		}

		var content string
		switch {
		case contentFlag != "":
			content = contentFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content = string(data)
		case emptyFlag:
			content = ""
		default:
			content, err = openEditor("")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		note, err := application.AddNote(title, parentID)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		if content != "" {
			if err := application.EditContent(note.ID, content); err != nil {
				return err
			}
			if err := application.SaveActive(); err != nil {
				return fmt.Errorf("failed to save note: %w", err)
			}
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", ui.ShortID(note.ID))))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "lumenote-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func init() {
	addCmd.Flags().String("content", "", "note content inline")
	addCmd.Flags().String("file", "", "read content from file")
	addCmd.Flags().StringP("folder", "f", "", "folder name or id prefix ('/' for root)")
	addCmd.Flags().Bool("empty", false, "create with empty content, skip $EDITOR")
	rootCmd.AddCommand(addCmd)
}
