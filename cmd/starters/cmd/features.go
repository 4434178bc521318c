package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/pkg/logger"
)

var featuresCmd = &cobra.Command{
	Use:   "features <pitcher>",
	Short: "Print one pitcher's normalized game log",
	Long: `Normalize a stored game log and print every derived column: outs,
cumulative and rolling totals, season and recent rates, and the before values.

Examples:
  starters features "Gerrit Cole"
  starters features "Gerrit Cole" -o cole.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runFeatures,
}

var featuresFlags struct {
	output   string
	starters string
	fill     string
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	featuresCmd.Flags().StringVarP(&featuresFlags.output, "output", "o", "", "write CSV here instead of stdout")
	featuresCmd.Flags().StringVar(&featuresFlags.starters, "starters", "", "directory of per-pitcher game logs")
	featuresCmd.Flags().StringVar(&featuresFlags.fill, "fill", "", "before-value fill policy: first or all")
}

func runFeatures(cmd *cobra.Command, args []string) error {
	flagOverride(cmd, "starters", func() { cfg.StartersDir = featuresFlags.starters })
	flagOverride(cmd, "fill", func() { cfg.FillPolicy = featuresFlags.fill })
	fill, err := features.ParseFillPolicy(cfg.FillPolicy)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	name := args[0]
	src := gamelog.DirSource{Dir: cfg.StartersDir}
	apps, err := src.Load(ctx, name)
	if err != nil {
		return err
	}
	log, err := features.Normalize(apps, features.WithFillPolicy(fill))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, d := range log.Anomalies {
		logger.Named("features").Warn(ctx, "innings outside .0/.1/.2",
			logger.String("pitcher", name), logger.String("date", d.String()))
	}

	if featuresFlags.output == "" {
		return log.WriteCSV(os.Stdout)
	}
	return writeFile(featuresFlags.output, func(w io.Writer) error { return log.WriteCSV(w) })
}
