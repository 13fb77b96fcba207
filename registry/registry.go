// Package registry keeps named timing distributions and exports them to Prometheus.
package registry

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every collector name unless overridden.
const DefaultNamespace = "render"

// TimerID identifies one outstanding timer of a TimingDistribution.
type TimerID uint64

// InvalidTimerID is never issued by Start.
const InvalidTimerID TimerID = 0

// Registry owns a set of named timing distributions and their collectors.
type Registry struct {
	namespace  string
	registerer prometheus.Registerer
	buckets    []float64
	clock      clockwork.Clock
	logger     *slog.Logger

	ids    atomic.Uint64
	errors *prometheus.CounterVec

	mu      sync.Mutex
	metrics map[string]*TimingDistribution
}

// Option customizes a Registry.
type Option func(*config)

type config struct {
	namespace  string
	registerer prometheus.Registerer
	buckets    []float64
	clock      clockwork.Clock
	logger     *slog.Logger
}

// WithRegisterer overrides the default Prometheus registerer. A nil registerer
// keeps collectors unregistered.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(cfg *config) {
		cfg.registerer = r
	}
}

// WithNamespace overrides the collector name prefix.
func WithNamespace(ns string) Option {
	return func(cfg *config) {
		if ns != "" {
			cfg.namespace = ns
		}
	}
}

// WithLatencyBuckets overrides the default histogram buckets (in ms).
func WithLatencyBuckets(buckets []float64) Option {
	return func(cfg *config) {
		if len(buckets) > 0 {
			cfg.buckets = buckets
		}
	}
}

// WithClock overrides the clock used to measure running timers.
func WithClock(c clockwork.Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithLogger sets the logger used to report recording errors. Without it the
// registry logs through slog.Default() at the time of the error.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// DefaultBuckets spans 50µs to roughly 400ms, the useful range for per-frame work.
func DefaultBuckets() []float64 {
	return prometheus.ExponentialBuckets(0.05, 2, 14)
}

// New constructs a Registry and registers its error counter.
func New(opts ...Option) *Registry {
	cfg := config{
		namespace:  DefaultNamespace,
		registerer: prometheus.DefaultRegisterer,
		buckets:    DefaultBuckets(),
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "telemetry_errors_total",
		Help:      "Timing samples rejected or adjusted, by metric and error kind.",
	}, []string{"metric", "error"})

	return &Registry{
		namespace:  cfg.namespace,
		registerer: cfg.registerer,
		buckets:    cfg.buckets,
		clock:      cfg.clock,
		logger:     cfg.logger,
		errors:     registerCounterVec(cfg.registerer, errs, cfg.logger),
		metrics:    make(map[string]*TimingDistribution),
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry bound to prometheus.DefaultRegisterer.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
	})
	return defaultReg
}

// TimingDistribution returns the metric called name, creating and registering
// it on first use.
func (r *Registry) TimingDistribution(name, help string) *TimingDistribution {
	r.mu.Lock()
	defer r.mu.Unlock()

	if td, ok := r.metrics[name]; ok {
		return td
	}

	hist := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      name + "_ms",
		Help:      help,
		Buckets:   r.buckets,
	})

	td := &TimingDistribution{
		name:    name,
		hist:    registerHistogram(r.registerer, hist, r.logger),
		errors:  r.errors.MustCurryWith(prometheus.Labels{"metric": name}),
		clock:   r.clock,
		logger:  r.logger,
		ids:     &r.ids,
		running: make(map[TimerID]time.Time),
		errs:    make(map[ErrorKind]int),
	}
	r.metrics[name] = td
	return td
}

// Len reports how many metrics have been created.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.metrics)
}

// Lookup returns the metric called name if it exists.
func (r *Registry) Lookup(name string) (*TimingDistribution, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	td, ok := r.metrics[name]
	return td, ok
}

// Snapshot returns the state of every metric, sorted by name.
func (r *Registry) Snapshot() []Snapshot {
	r.mu.Lock()
	metrics := make([]*TimingDistribution, 0, len(r.metrics))
	for _, td := range r.metrics {
		metrics = append(metrics, td)
	}
	r.mu.Unlock()

	out := make([]Snapshot, 0, len(metrics))
	for _, td := range metrics {
		out = append(out, td.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
