package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/starters/stat"
	"github.com/rustyeddy/starters/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Query the history of augment runs",
	Long: `Query augment runs recorded in the SQLite run store.

Subcommands:
  list  - List recent runs
  show  - Show one run and a pitcher's stored features

Examples:
  starters runs list --limit 5
  starters runs show 01JA2B3C4D5E6F7G8H9J0KMNPQ --pitcher "Gerrit Cole"`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var (
	runsDBPath  string
	runsLimit   int
	runsPitcher string
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsCmd.PersistentFlags().StringVarP(&runsDBPath, "db", "d", "", "path to the SQLite run store")
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to list (0 for all)")
	runsShowCmd.Flags().StringVarP(&runsPitcher, "pitcher", "p", "", "also print this pitcher's stored features")
}

func openRuns(cmd *cobra.Command) (*store.SQLite, error) {
	flagOverride(cmd, "db", func() { cfg.Store.SQLitePath = runsDBPath })
	if cfg.Store.SQLitePath == "" {
		return nil, fmt.Errorf("no run store configured (store.sqlite_path)")
	}
	s, err := store.NewSQLite(cfg.Store.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return s, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	s, err := openRuns(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tGAMES\tMATCHED\tISSUES\tSCHEDULE")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d/%d\t%d\t%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Games, r.Matched, r.Slots, r.Issues, r.Schedule)
	}
	return w.Flush()
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	s, err := openRuns(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	r, err := s.GetRun(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Run:       %s\n", r.ID)
	fmt.Printf("Started:   %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("Schedule:  %s\n", r.Schedule)
	fmt.Printf("Games:     %d\n", r.Games)
	fmt.Printf("Pitchers:  %d (%d processed, %d without log, %d unreadable)\n", r.Pitchers, r.Processed, r.NoLog, r.Malformed)
	fmt.Printf("Starters:  %d of %d slots matched, %d issues\n", r.Matched, r.Slots, r.Issues)

	if runsPitcher == "" {
		return nil
	}
	recs, err := s.PitcherFeatures(ctx, r.ID, runsPitcher)
	if err != nil {
		return fmt.Errorf("query features: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nDATE\tSIDE\tTEAM\tFEATURE\tVALUE")
	for _, f := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", f.Date, f.Side, f.Team, f.Feature, stat.FromPtr(f.Value))
	}
	return w.Flush()
}
