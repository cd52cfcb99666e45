package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Flags take precedence over environment variables
// (TABSTATE_DIR, TABSTATE_OUTPUT), which take precedence over the optional
// config file.
const (
	configKeyDir    = "dir"
	configKeyOutput = "output"
)

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("TABSTATE")
	viper.AutomaticEnv()

	viper.SetDefault(configKeyOutput, "text")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".go-tabstate")
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err == nil {
			logrus.Debugf("using config file %s", viper.ConfigFileUsed())
		}
	}
}

// resolveTabStateDir returns the TabState directory from the flag, the
// environment, or the config file, in that order.
func resolveTabStateDir() string {
	if tabStateDir != "" {
		return tabStateDir
	}
	return viper.GetString(configKeyDir)
}

// resolveOutputFormat returns the output format. An output flag given on
// the command line wins even when it repeats the default, so it can
// override a config file.
func resolveOutputFormat() string {
	if rootCmd.PersistentFlags().Changed("output") {
		return outputFormat
	}
	if v := viper.GetString(configKeyOutput); v != "" {
		return v
	}
	return outputFormat
}

// defaultTabStateGlob is where Notepad keeps tab state under a Windows user
// profile, relative to %LOCALAPPDATA%.
const defaultTabStateGlob = "Packages/Microsoft.WindowsNotepad_*/LocalState/TabState"

// locateTabStateDir expands the default TabState location under a profile's
// local app data directory when no explicit directory is configured.
func locateTabStateDir(localAppData string) (string, bool) {
	matches, err := filepath.Glob(filepath.Join(localAppData, defaultTabStateGlob))
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}
