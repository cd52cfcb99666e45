package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deskforensics/go-tabstate/internal/services"
)

var (
	// Recovery options (tabs command only)
	tabsIncludeDeleted bool
	tabsFailFast       bool
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "Recover content from every tab file in a TabState directory",
	Long: `Decode all tab state files in a TabState directory and print the
recovered content of each tab.

Examples:
  # Recover all tabs
  go-tabstate tabs --tabstate-dir ./TabState

  # Include deleted but recoverable characters
  go-tabstate tabs --tabstate-dir ./TabState --include-deleted-content

  # Emit JSON records
  go-tabstate tabs --tabstate-dir ./TabState --output json`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runTabs()
	},
}

func init() {
	rootCmd.AddCommand(tabsCmd)

	tabsCmd.Flags().BoolVar(&tabsIncludeDeleted, "include-deleted-content", false, "include deleted but recoverable content")
	tabsCmd.Flags().BoolVar(&tabsFailFast, "fail-fast", false, "abort on the first file that fails to decode")
}

func runTabs() error {
	dir := resolveTabStateDir()
	if dir == "" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			if found, ok := locateTabStateDir(local); ok {
				dir = found
			}
		}
	}
	if dir == "" {
		return fmt.Errorf("no TabState directory given (use --tabstate-dir or TABSTATE_DIR)")
	}

	service := services.NewTabService(dir, services.TabServiceOptions{
		IncludeDeleted: tabsIncludeDeleted,
		FailFast:       tabsFailFast,
	})
	records, err := service.CollectTabs()
	if err != nil {
		return err
	}

	switch resolveOutputFormat() {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	default:
		for _, record := range records {
			fmt.Printf("── %s", record.Path)
			if record.Saved {
				fmt.Printf(" (saved: %s)", record.SavedPath)
			}
			fmt.Println()
			fmt.Println(record.Content)
		}
	}
	return nil
}
