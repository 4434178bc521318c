package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/starters/augment"
	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/metrics"
	"github.com/rustyeddy/starters/pkg/id"
	"github.com/rustyeddy/starters/pkg/logger"
	"github.com/rustyeddy/starters/schedule"
	"github.com/rustyeddy/starters/store"
)

var augmentCmd = &cobra.Command{
	Use:   "augment",
	Short: "Add starter features to every completed game of a schedule",
	Long: `Read the schedule, keep completed games, and add each starter's statistics
as they stood before the game, plus Home_Win.

Examples:
  starters augment
  starters augment --schedule mlb-2025.csv --starters ./data/starters --output out.csv
  starters augment --workers 8 --xlsx out.xlsx`,
	Args: cobra.NoArgs,
	RunE: runAugment,
}

var augmentFlags struct {
	schedule string
	starters string
	output   string
	xlsx     string
	fill     string
	workers  int
}

func init() {
	rootCmd.AddCommand(augmentCmd)

	f := augmentCmd.Flags()
	f.StringVarP(&augmentFlags.schedule, "schedule", "s", "", "schedule CSV")
	f.StringVar(&augmentFlags.starters, "starters", "", "directory of per-pitcher game logs")
	f.StringVarP(&augmentFlags.output, "output", "o", "", "augmented CSV to write")
	f.StringVar(&augmentFlags.xlsx, "xlsx", "", "also write the augmented schedule as XLSX")
	f.StringVar(&augmentFlags.fill, "fill", "", "before-value fill policy: first or all")
	f.IntVarP(&augmentFlags.workers, "workers", "w", 0, "pitchers processed concurrently")
}

func applyAugmentFlags(cmd *cobra.Command) error {
	flagOverride(cmd, "schedule", func() { cfg.SchedulePath = augmentFlags.schedule })
	flagOverride(cmd, "starters", func() { cfg.StartersDir = augmentFlags.starters })
	flagOverride(cmd, "output", func() { cfg.OutputPath = augmentFlags.output })
	flagOverride(cmd, "xlsx", func() { cfg.XLSXPath = augmentFlags.xlsx })
	flagOverride(cmd, "fill", func() { cfg.FillPolicy = augmentFlags.fill })
	flagOverride(cmd, "workers", func() { cfg.Workers = augmentFlags.workers })
	return cfg.Validate()
}

func runAugment(cmd *cobra.Command, args []string) error {
	if err := applyAugmentFlags(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logger.Named("augment")
	started := time.Now()

	t, err := readSchedule(cfg.SchedulePath)
	if err != nil {
		return err
	}

	games, err := schedule.Parse(t, cfg.Columns)
	if errors.Is(err, schedule.ErrMissingColumn) {
		log.Error(ctx, "schedule cannot be augmented; writing it unchanged",
			logger.String("schedule", cfg.SchedulePath), logger.Error(err))
		return writeFile(cfg.OutputPath, t.WriteCSV)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", cfg.SchedulePath, err)
	}

	games = schedule.Dedupe(schedule.Completed(games, cfg.CompletedStatuses...))
	log.Info(ctx, "schedule loaded",
		logger.Int("rows", len(t.Rows)),
		logger.Int("completed_games", len(games)),
	)

	fill, err := features.ParseFillPolicy(cfg.FillPolicy)
	if err != nil {
		return err
	}
	aug := &augment.Augmenter{
		Source:  gamelog.DirSource{Dir: cfg.StartersDir},
		Fill:    fill,
		Workers: cfg.Workers,
		Logger:  log,
	}
	res, err := aug.Augment(ctx, games)
	if err != nil {
		return err
	}

	if err := writeFile(cfg.OutputPath, func(w io.Writer) error {
		return schedule.WriteAugmented(w, t, res.Rows)
	}); err != nil {
		return err
	}
	if cfg.XLSXPath != "" {
		if err := schedule.WriteXLSX(cfg.XLSXPath, t, res.Rows); err != nil {
			return err
		}
	}

	run := store.NewRun(id.New(), cfg.SchedulePath, started, res)
	recordRun(ctx, log, run, res.Rows)

	if cfg.Metrics.Pushgateway != "" {
		m := metrics.NewManager(metrics.WithConstLabels(map[string]string{"season": strconv.Itoa(cfg.Season)}))
		m.ObserveAugment(res, time.Since(started))
		if err := m.Push(ctx, cfg.Metrics.Pushgateway, cfg.Metrics.Job); err != nil {
			log.Warn(ctx, "metrics push failed", logger.Error(err))
		}
	}

	fmt.Printf("✓ Saved: %s\n", cfg.OutputPath)
	fmt.Printf("  Run:       %s\n", run.ID)
	fmt.Printf("  Games:     %d\n", run.Games)
	fmt.Printf("  Pitchers:  %d processed, %d without log, %d unreadable\n", run.Processed, run.NoLog, run.Malformed)
	fmt.Printf("  Starters:  %d of %d slots matched (%d issues)\n", run.Matched, run.Slots, run.Issues)
	return nil
}

// recordRun stores the run in every configured sink. Storage failures are
// logged; the augmented file is already written.
func recordRun(ctx context.Context, log logger.Logger, run store.Run, rows []schedule.Row) {
	var sinks []store.Sink
	if cfg.Store.SQLitePath != "" {
		s, err := store.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			log.Warn(ctx, "open run store", logger.String("path", cfg.Store.SQLitePath), logger.Error(err))
		} else {
			sinks = append(sinks, s)
		}
	}
	if cfg.Store.MySQLDSN != "" {
		m, err := store.NewMySQL(cfg.Store.MySQLDSN)
		if err != nil {
			log.Warn(ctx, "open mysql store", logger.Error(err))
		} else {
			sinks = append(sinks, m)
		}
	}
	for _, s := range sinks {
		if err := store.Save(ctx, s, run, rows); err != nil {
			log.Warn(ctx, "record run", logger.String("run", run.ID), logger.Error(err))
		}
		s.Close()
	}
}

func readSchedule(path string) (*schedule.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()

	t, err := schedule.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// writeFile writes through a temporary file in the target directory and
// renames it into place.
func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".starters-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
