package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deskforensics/go-tabstate/internal/parsers/tabstate"
	"github.com/deskforensics/go-tabstate/internal/types"
)

var inspectIncludeDeleted bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [tab-file]",
	Short: "Decode a single tab file and show its metadata",
	Long: `Decode one tab state file and print its metadata alongside the
recovered content.

Examples:
  # Inspect a single tab
  go-tabstate inspect 7bd9a745-68be-4965-87e0-4d745e8a13b7.bin

  # Include deleted but recoverable characters
  go-tabstate inspect tab.bin --include-deleted-content`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectIncludeDeleted, "include-deleted-content", false, "include deleted but recoverable content")
}

func runInspect(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	reader := tabstate.NewTabReader(path, inspectIncludeDeleted)
	content, err := reader.ReadTab(fh)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	if resolveOutputFormat() == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(inspectView(content))
	}

	fmt.Printf("File:  %s\n", content.SourcePath)
	fmt.Printf("State: %s\n", stateLabel(content.Saved))
	if meta := content.SavedMetadata; meta != nil {
		fmt.Printf("Saved path:   %s\n", meta.FilePath)
		fmt.Printf("Saved size:   %d\n", meta.FileSize)
		fmt.Printf("Encoding:     %d\n", meta.Encoding)
		fmt.Printf("Line endings: %d\n", meta.CarriageReturnType)
		fmt.Printf("Saved at:     %s\n", types.FiletimeToTime(meta.Timestamp))
		fmt.Printf("Content hash: %x\n", meta.ContentHash)
	}
	fmt.Println("Content:")
	fmt.Println(content.Content)
	return nil
}

func stateLabel(saved bool) string {
	if saved {
		return "saved"
	}
	return "unsaved"
}

func inspectView(content *types.RecoveredContent) map[string]any {
	view := map[string]any{
		"path":    content.SourcePath,
		"saved":   content.Saved,
		"content": content.Content,
	}
	if meta := content.SavedMetadata; meta != nil {
		view["saved_path"] = meta.FilePath
		view["saved_size"] = meta.FileSize
		view["encoding"] = meta.Encoding
		view["line_ending"] = meta.CarriageReturnType
		view["saved_at"] = types.FiletimeToTime(meta.Timestamp)
		view["content_hash"] = fmt.Sprintf("%x", meta.ContentHash)
	}
	return view
}
