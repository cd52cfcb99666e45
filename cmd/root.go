package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	tabStateDir  string
)

var rootCmd = &cobra.Command{
	Use:   "go-tabstate",
	Short: "Recover text from Windows Notepad tab state files",
	Long: `go-tabstate is a read-only command-line tool for recovering the current
and historical text content of Windows 11 Notepad tabs from their binary
TabState files, including unflushed edits and deleted characters.

Works directly on TabState directories or individual .bin files without
Notepad installed. Ideal for forensic analysis and data recovery.

Commands:
  tabs        Recover content from every tab file in a TabState directory
  inspect     Decode a single tab file and show its metadata`,
	Version: "0.1.0-dev",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch {
		case quiet:
			logrus.SetLevel(logrus.ErrorLevel)
		case verbose:
			logrus.SetLevel(logrus.DebugLevel)
		default:
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&tabStateDir, "tabstate-dir", "d", "", "path to the TabState directory")
}
