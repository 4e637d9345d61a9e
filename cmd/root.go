// Package cmd implements the stepper CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/initializ/stepper/config"
	"github.com/initializ/stepper/types"
)

var (
	cfgFile          string
	envFile          string
	endpointOverride string
	themeOverride    string
	logFileOverride  string
	verbose          bool

	appVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "stepper",
	Short: "Follow a four-step process over a server-sent event stream",
	Long: "Stepper opens the process event stream, shows each step's status as it changes, " +
		"and reports the error text if the process or the connection fails.",
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to .env file")
	rootCmd.PersistentFlags().StringVar(&endpointOverride, "endpoint", "", "process stream URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&themeOverride, "theme", "", "TUI color theme: dark, light, or auto")
	rootCmd.PersistentFlags().StringVar(&logFileOverride, "log-file", "", "write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	addWatchFlags(rootCmd)

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version and commit for display.
func SetVersionInfo(version, commit string) {
	appVersion = version
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("stepper %s (commit: %s)\n", version, commit))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from file, env and flags.
// The config file must exist only when --config names a non-default path.
func loadConfig() (*types.Config, error) {
	cfg, err := config.Load(cfgFile, cfgFile != config.DefaultPath, envFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if endpointOverride != "" {
		cfg.Endpoint = endpointOverride
	}
	if themeOverride != "" {
		cfg.Theme = themeOverride
	}
	if logFileOverride != "" {
		cfg.Log.File = logFileOverride
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
