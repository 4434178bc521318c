package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/starters/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate the effective configuration

Examples:
  starters config init -o starters.yaml
  starters config validate -c starters.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration (file, env and defaults combined)",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configInitOutput string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "starters.yaml", "output config file path")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  starters augment -c %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Schedule: %s\n", cfg.SchedulePath)
	fmt.Printf("  Starters: %s\n", cfg.StartersDir)
	fmt.Printf("  Output:   %s\n", cfg.OutputPath)
	fmt.Printf("  Fill:     %s, workers %d\n", cfg.FillPolicy, cfg.Workers)
	fmt.Printf("  Collect:  %s renderer, %.2f req/s\n", cfg.Collector.Renderer, cfg.Collector.RPS)
	return nil
}
