package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/starters/collector"
	"github.com/rustyeddy/starters/config"
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/metrics"
	"github.com/rustyeddy/starters/pkg/logger"
	"github.com/rustyeddy/starters/schedule"
)

var collectCmd = &cobra.Command{
	Use:   "collect [pitcher...]",
	Short: "Download pitching game logs",
	Long: `Download each starter's game log for the season and store it as
<starters>/<name>.csv. Pitchers default to every starter named in the schedule.
Logs already on disk are kept unless --force is given.

Examples:
  starters collect
  starters collect "Gerrit Cole" "Tarik Skubal"
  starters collect --overrides-only --force
  starters collect --renderer http --rps 1`,
	RunE: runCollect,
}

var collectFlags struct {
	schedule      string
	starters      string
	season        int
	renderer      string
	rps           float64
	force         bool
	overridesOnly bool
}

func init() {
	rootCmd.AddCommand(collectCmd)

	f := collectCmd.Flags()
	f.StringVarP(&collectFlags.schedule, "schedule", "s", "", "schedule CSV naming the starters")
	f.StringVar(&collectFlags.starters, "starters", "", "directory game logs are written to")
	f.IntVar(&collectFlags.season, "season", 0, "season to collect")
	f.StringVar(&collectFlags.renderer, "renderer", "", "page renderer: http or chrome")
	f.Float64Var(&collectFlags.rps, "rps", 0, "requests per second")
	f.BoolVarP(&collectFlags.force, "force", "f", false, "re-download logs that already exist")
	f.BoolVar(&collectFlags.overridesOnly, "overrides-only", false, "collect only the pitchers with a manual override")
}

func applyCollectFlags(cmd *cobra.Command) error {
	flagOverride(cmd, "schedule", func() { cfg.SchedulePath = collectFlags.schedule })
	flagOverride(cmd, "starters", func() { cfg.StartersDir = collectFlags.starters })
	flagOverride(cmd, "season", func() { cfg.Season = collectFlags.season })
	flagOverride(cmd, "renderer", func() { cfg.Collector.Renderer = collectFlags.renderer })
	flagOverride(cmd, "rps", func() { cfg.Collector.RPS = collectFlags.rps })
	flagOverride(cmd, "force", func() { cfg.Collector.Force = collectFlags.force })
	return cfg.Validate()
}

// newCollector builds a collector from the configuration.
func newCollector(c *config.Config, log logger.Logger) *collector.Collector {
	client := collector.NewHTTPClient(c.Collector.Timeout, c.Collector.UserAgent)

	var renderer collector.Renderer = collector.HTTPRenderer{Client: client}
	if c.Collector.Renderer == config.RendererChrome {
		renderer = collector.ChromeRenderer{Settle: c.Collector.SettleDelay, ExecPath: c.Collector.ChromePath}
	}

	return &collector.Collector{
		Store:     gamelog.DirSource{Dir: c.StartersDir},
		Resolver:  collector.LookupResolver{Client: client, URL: c.Collector.LookupURL},
		Renderer:  renderer,
		Overrides: collector.DefaultOverrides(),
		BaseURL:   c.Collector.BaseURL,
		Force:     c.Collector.Force,
		Limiter:   rate.NewLimiter(rate.Limit(c.Collector.RPS), c.Collector.Burst),
		Logger:    log,
	}
}

func collectTargets(args []string) ([]string, error) {
	if collectFlags.overridesOnly {
		names := collector.DefaultOverrides().Names()
		sort.Strings(names)
		return names, nil
	}
	if len(args) > 0 {
		return args, nil
	}
	t, err := readSchedule(cfg.SchedulePath)
	if err != nil {
		return nil, err
	}
	games, err := schedule.Parse(t, cfg.Columns)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", cfg.SchedulePath, err)
	}
	return schedule.Starters(games), nil
}

func runCollect(cmd *cobra.Command, args []string) error {
	if err := applyCollectFlags(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()
	log := logger.Named("collect")
	started := time.Now()

	pitchers, err := collectTargets(args)
	if err != nil {
		return err
	}
	log.Info(ctx, "collecting game logs",
		logger.Int("pitchers", len(pitchers)),
		logger.Int("season", cfg.Season),
		logger.String("renderer", cfg.Collector.Renderer),
	)

	sum, err := newCollector(cfg, log).CollectAll(ctx, pitchers, cfg.Season)
	if err != nil {
		return err
	}

	if cfg.Metrics.Pushgateway != "" {
		m := metrics.NewManager(metrics.WithConstLabels(map[string]string{"season": strconv.Itoa(cfg.Season)}))
		m.ObserveCollect(sum, time.Since(started))
		if err := m.Push(ctx, cfg.Metrics.Pushgateway, cfg.Metrics.Job); err != nil {
			log.Warn(ctx, "metrics push failed", logger.Error(err))
		}
	}

	fmt.Printf("✓ Collected into %s\n", cfg.StartersDir)
	fmt.Printf("  Saved:   %d\n", len(sum.Saved))
	fmt.Printf("  Skipped: %d\n", len(sum.Skipped))
	fmt.Printf("  Failed:  %d\n", len(sum.Failures))
	for _, name := range sum.Failed() {
		fmt.Printf("    %s: %v\n", name, sum.Failures[name])
	}
	return nil
}
