package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/starters/config"
	"github.com/rustyeddy/starters/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "starters",
	Short: "Point-in-time starting pitcher features for baseball schedules",
	Long: `Starters adds each starting pitcher's season and recent form, as it stood
before the game, to every completed game of a season schedule.

It provides tools for:
  - Collecting per-pitcher game logs from the statistics site
  - Normalizing a game log into cumulative and rolling statistics
  - Augmenting a schedule with home and away starter features
  - Keeping a history of augment runs in SQLite`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	envFile  string
	logLevel string

	// cfg is the loaded configuration, available to every command's RunE.
	cfg *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML); defaults to $STARTERS_CONFIG")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	if err := logger.Init(); err != nil {
		return err
	}

	path := cfgFile
	if path == "" {
		path = os.Getenv("STARTERS_CONFIG")
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	return nil
}

// flagOverride applies set to the configuration when the named flag was
// given on the command line.
func flagOverride(cmd *cobra.Command, name string, set func()) {
	if cmd.Flags().Changed(name) {
		set()
	}
}
