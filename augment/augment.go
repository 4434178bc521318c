// Package augment attaches each starting pitcher's before-game statistics to
// the schedule rows they started.
package augment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rustyeddy/starters/features"
	"github.com/rustyeddy/starters/gamelog"
	"github.com/rustyeddy/starters/pkg/logger"
	"github.com/rustyeddy/starters/schedule"
)

// Augmenter joins pitcher game logs onto the schedule.
type Augmenter struct {
	// Source supplies each pitcher's appearance log.
	Source gamelog.Source
	// Fill is the before-value fill policy (default features.FillFirst).
	Fill features.FillPolicy
	// Workers is the number of pitchers processed at once. Values below 2
	// process pitchers one at a time.
	Workers int
	Logger  logger.Logger
}

// start is one schedule slot a pitcher started.
type start struct {
	row  int
	side schedule.Side
	date gamelog.Date
}

// pending is a feature set waiting to be merged into a row.
type pending struct {
	start
	before features.Before
}

// pitcherRun is everything one pitcher contributes. Runs never touch the
// output rows directly; they are merged after all pitchers finish.
type pitcherRun struct {
	result  PitcherResult
	pending []pending
	issues  []Issue
}

// Augment fills the before-game features of both starters on every game and
// computes the home-win flag. Games should already be completed and
// deduplicated. Pitchers without usable logs are skipped and leave their
// features missing. Only context cancellation returns an error.
func (a *Augmenter) Augment(ctx context.Context, games []schedule.Game) (*Result, error) {
	if a.Source == nil {
		return nil, fmt.Errorf("augment: Source is required")
	}
	log := a.logger()

	rows := schedule.NewRows(games)
	starts := startsByPitcher(rows)
	pitchers := schedule.Starters(games)

	log.Info(ctx, "augmenting schedule",
		logger.Int("games", len(rows)),
		logger.Int("pitchers", len(pitchers)),
		logger.Int("workers", a.workers()),
	)

	runs, err := a.runAll(ctx, pitchers, starts)
	if err != nil {
		return nil, err
	}

	res := &Result{Rows: rows}
	for _, run := range runs {
		for _, p := range run.pending {
			*res.Rows[p.row].Stats(p.side) = p.before
		}
		res.Pitchers = append(res.Pitchers, run.result)
		res.Issues = append(res.Issues, run.issues...)
	}
	for i := range res.Rows {
		res.Rows[i].HomeWin = schedule.HomeWin(res.Rows[i].Game)
	}

	log.Info(ctx, "schedule augmented",
		logger.Int("processed", res.Count(Processed)),
		logger.Int("no_log", res.Count(NoLog)),
		logger.Int("malformed", res.Count(Malformed)+res.Count(Empty)),
		logger.Int("matched", res.Matched()),
		logger.Int("slots", res.Slots()),
		logger.Int("issues", len(res.Issues)),
	)
	return res, nil
}

func startsByPitcher(rows []schedule.Row) map[string][]start {
	out := map[string][]start{}
	for i, r := range rows {
		g := r.Game
		if g.HomeStarter != "" {
			out[g.HomeStarter] = append(out[g.HomeStarter], start{row: i, side: schedule.HomeSide, date: g.Date})
		}
		if g.AwayStarter != "" {
			out[g.AwayStarter] = append(out[g.AwayStarter], start{row: i, side: schedule.AwaySide, date: g.Date})
		}
	}
	return out
}

// runAll processes every pitcher and returns their runs in pitcher order.
func (a *Augmenter) runAll(ctx context.Context, pitchers []string, starts map[string][]start) ([]pitcherRun, error) {
	runs := make([]pitcherRun, len(pitchers))

	workers := a.workers()
	if workers == 1 {
		for i, name := range pitchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			runs[i] = a.processPitcher(ctx, name, starts[name])
		}
		return runs, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				runs[i] = a.processPitcher(ctx, pitchers[i], starts[pitchers[i]])
			}
		}()
	}

feed:
	for i := range pitchers {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

func (a *Augmenter) processPitcher(ctx context.Context, name string, starts []start) pitcherRun {
	log := a.logger()
	run := pitcherRun{result: PitcherResult{Name: name, Starts: len(starts)}}

	apps, err := a.Source.Load(ctx, name)
	switch {
	case errors.Is(err, gamelog.ErrNoLog):
		log.Info(ctx, "no game log, skipping", logger.String("pitcher", name), logger.Error(err))
		run.result.Outcome, run.result.Err = NoLog, err
		return run
	case err != nil:
		log.Warn(ctx, "unreadable game log, skipping", logger.String("pitcher", name), logger.Error(err))
		run.result.Outcome, run.result.Err = Malformed, err
		return run
	}

	gl, err := features.Normalize(apps, features.WithFillPolicy(a.Fill))
	if err != nil {
		log.Warn(ctx, "empty game log, skipping", logger.String("pitcher", name), logger.Error(err))
		run.result.Outcome, run.result.Err = Empty, err
		return run
	}
	run.result.Appearances = gl.Len()

	for _, d := range gl.Anomalies {
		log.Warn(ctx, "innings value outside partial-innings notation",
			logger.String("pitcher", name), logger.String("date", d.String()))
		run.issues = append(run.issues, Issue{Pitcher: name, Date: d, Kind: BadInnings})
	}

	for _, s := range starts {
		d, err := gl.Lookup(s.date)
		switch {
		case errors.Is(err, features.ErrDuplicateDate):
			log.Warn(ctx, "several appearances on one date, leaving features missing",
				logger.String("pitcher", name), logger.String("date", s.date.String()))
			run.issues = append(run.issues, Issue{Pitcher: name, Date: s.date, Side: s.side, Kind: DuplicateDate})
			continue
		case err != nil:
			log.Debug(ctx, "no appearance for start",
				logger.String("pitcher", name), logger.String("date", s.date.String()))
			run.issues = append(run.issues, Issue{Pitcher: name, Date: s.date, Side: s.side, Kind: NoAppearance})
			continue
		}
		run.pending = append(run.pending, pending{start: s, before: d.Before})
	}

	run.result.Outcome = Processed
	run.result.Matched = len(run.pending)
	log.Debug(ctx, "pitcher processed",
		logger.String("pitcher", name),
		logger.Int("appearances", gl.Len()),
		logger.Int("starts", len(starts)),
		logger.Int("matched", len(run.pending)),
	)
	return run
}

func (a *Augmenter) workers() int {
	if a.Workers < 2 {
		return 1
	}
	return a.Workers
}

func (a *Augmenter) logger() logger.Logger {
	if a.Logger == nil {
		return logger.Nop()
	}
	return a.Logger
}
