package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/time/rate"

	"github.com/rustyeddy/starters/pkg/logger"
)

// Store persists one pitcher's raw game log.
type Store interface {
	Exists(pitcher string) bool
	Save(pitcher string, header []string, rows [][]string) (string, error)
}

// Status is what Collect did for one pitcher.
type Status string

const (
	Saved   Status = "saved"
	Skipped Status = "skipped"
	Failed  Status = "failed"
)

// Collector downloads pitching game logs and stores them one file per pitcher.
type Collector struct {
	Store     Store
	Resolver  Resolver
	Renderer  Renderer
	Overrides Overrides
	BaseURL   string
	Force     bool

	// Limiter paces requests to the lookup service and the site. Nil means
	// unlimited.
	Limiter *rate.Limiter
	Logger  logger.Logger
}

// Summary totals a CollectAll run.
type Summary struct {
	Saved    []string
	Skipped  []string
	Failures map[string]error
}

func (s Summary) Failed() []string {
	out := make([]string, 0, len(s.Failures))
	for n := range s.Failures {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (c *Collector) log() logger.Logger {
	if c.Logger == nil {
		return logger.Nop()
	}
	return c.Logger
}

func (c *Collector) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return ctx.Err()
	}
	return c.Limiter.Wait(ctx)
}

// SlugFor returns the provider slug for a pitcher, from the overrides when
// present and otherwise from the resolver.
func (c *Collector) SlugFor(ctx context.Context, name string) (string, error) {
	if slug, ok := c.Overrides[name]; ok {
		return slug, nil
	}
	if c.Resolver == nil {
		return "", fmt.Errorf("%w: %q (no resolver)", ErrPlayerNotFound, name)
	}
	if err := c.wait(ctx); err != nil {
		return "", err
	}
	id, err := c.Resolver.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	return Slug(name, id), nil
}

// Collect fetches and saves one pitcher's game log for a season. An existing file is left
// alone unless Force is set.
func (c *Collector) Collect(ctx context.Context, name string, season int) (Status, error) {
	if c.Store == nil || c.Renderer == nil {
		return Failed, errors.New("collector: store and renderer are required")
	}
	if !c.Force && c.Store.Exists(name) {
		c.log().Debug(ctx, "game log already stored", logger.String("pitcher", name))
		return Skipped, nil
	}

	slug, err := c.SlugFor(ctx, name)
	if err != nil {
		return Failed, err
	}
	url := GamelogURL(c.BaseURL, slug, season)

	if err := c.wait(ctx); err != nil {
		return Failed, err
	}
	html, err := c.Renderer.Render(ctx, url)
	if err != nil {
		return Failed, err
	}
	t, err := ExtractGamelog(html)
	if err != nil {
		return Failed, fmt.Errorf("%s: %w", url, err)
	}

	if err := validate(t); err != nil {
		return Failed, fmt.Errorf("%s: %w", url, err)
	}

	path, err := c.Store.Save(name, t.Header, t.Rows)
	if err != nil {
		return Failed, err
	}
	c.log().Info(ctx, "saved game log",
		logger.String("pitcher", name),
		logger.Int("games", len(t.Rows)),
		logger.String("path", path),
	)
	return Saved, nil
}

// ErrEmptyGamelog means the page had a game-log table without usable rows.
var ErrEmptyGamelog = errors.New("game-log table has no dated rows")

func validate(t Table) error {
	if len(t.Rows) == 0 {
		return ErrEmptyGamelog
	}
	for _, h := range t.Header {
		if strings.EqualFold(h, "Date") {
			return nil
		}
	}
	return fmt.Errorf("%w: no Date column", ErrNoGamelogTable)
}

// CollectAll collects every pitcher in order. Per-pitcher failures are
// recorded in the summary; only context cancellation stops the run.
func (c *Collector) CollectAll(ctx context.Context, pitchers []string, season int) (Summary, error) {
	sum := Summary{Failures: map[string]error{}}
	for _, name := range pitchers {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		st, err := c.Collect(ctx, name, season)
		switch {
		case err != nil && ctx.Err() != nil:
			return sum, ctx.Err()
		case err != nil:
			c.log().Warn(ctx, "collect failed", logger.String("pitcher", name), logger.Error(err))
			sum.Failures[name] = err
		case st == Skipped:
			sum.Skipped = append(sum.Skipped, name)
		default:
			sum.Saved = append(sum.Saved, name)
		}
	}
	c.log().Info(ctx, "collection finished",
		logger.Int("saved", len(sum.Saved)),
		logger.Int("skipped", len(sum.Skipped)),
		logger.Int("failed", len(sum.Failures)),
	)
	return sum, nil
}
