// Package metrics exposes batch-run statistics as Prometheus metrics and
// optionally pushes them to a Pushgateway.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/rustyeddy/starters/augment"
	"github.com/rustyeddy/starters/collector"
)

// Manager owns the metrics of one batch run.
type Manager struct {
	namespace   string
	subsystem   string
	constLabels map[string]string
	registry    *prometheus.Registry

	games        prometheus.Gauge
	slots        prometheus.Gauge
	matched      prometheus.Gauge
	pitchers     *prometheus.CounterVec
	issues       *prometheus.CounterVec
	runDuration  prometheus.Gauge
	lastRunUnix  prometheus.Gauge
	collected    *prometheus.CounterVec
	collectTotal prometheus.Gauge
}

// NewManager creates a manager on its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "starters",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: m.constLabels,
		}
	}

	m.games = auto.NewGauge(prometheus.GaugeOpts(opts("games", "Completed games in the augmented schedule")))
	m.slots = auto.NewGauge(prometheus.GaugeOpts(opts("starter_slots", "Starter slots in the augmented schedule")))
	m.matched = auto.NewGauge(prometheus.GaugeOpts(opts("starter_slots_matched", "Starter slots that received features")))
	m.pitchers = auto.NewCounterVec(
		prometheus.CounterOpts(opts("pitchers_total", "Pitchers processed by outcome")),
		[]string{"outcome"},
	)
	m.issues = auto.NewCounterVec(
		prometheus.CounterOpts(opts("join_issues_total", "Starter slots left unfilled by reason")),
		[]string{"kind"},
	)
	m.runDuration = auto.NewGauge(prometheus.GaugeOpts(opts("run_duration_seconds", "Wall time of the last run")))
	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts(opts("last_run_timestamp_seconds", "Unix time the last run finished")))
	m.collected = auto.NewCounterVec(
		prometheus.CounterOpts(opts("gamelogs_collected_total", "Game logs handled by the collector by status")),
		[]string{"status"},
	)
	m.collectTotal = auto.NewGauge(prometheus.GaugeOpts(opts("gamelogs_requested", "Pitchers requested in the last collection")))
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAugment records the outcome of an augment run.
func (m *Manager) ObserveAugment(res *augment.Result, took time.Duration) {
	m.games.Set(float64(len(res.Rows)))
	m.slots.Set(float64(res.Slots()))
	m.matched.Set(float64(res.Matched()))
	for _, p := range res.Pitchers {
		m.pitchers.WithLabelValues(string(p.Outcome)).Inc()
	}
	for _, is := range res.Issues {
		m.issues.WithLabelValues(string(is.Kind)).Inc()
	}
	m.finish(took)
}

// ObserveCollect records the outcome of a collection.
func (m *Manager) ObserveCollect(sum collector.Summary, took time.Duration) {
	m.collectTotal.Set(float64(len(sum.Saved) + len(sum.Skipped) + len(sum.Failures)))
	m.collected.WithLabelValues(string(collector.Saved)).Add(float64(len(sum.Saved)))
	m.collected.WithLabelValues(string(collector.Skipped)).Add(float64(len(sum.Skipped)))
	m.collected.WithLabelValues(string(collector.Failed)).Add(float64(len(sum.Failures)))
	m.finish(took)
}

func (m *Manager) finish(took time.Duration) {
	m.runDuration.Set(took.Seconds())
	m.lastRunUnix.SetToCurrentTime()
}

// Push sends every metric to a Pushgateway under the given job name.
func (m *Manager) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}
