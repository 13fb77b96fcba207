package registry

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

// MaxSampleTime caps a single sample. Larger samples are clamped.
const MaxSampleTime = 10 * time.Minute

// TimingDistribution accumulates elapsed times for one named phase. Samples come
// either from Start/StopAndAccumulate pairs or from AccumulateRawDuration.
//
// No method returns an error: misuse is counted, logged at debug level and
// otherwise ignored.
type TimingDistribution struct {
	name   string
	hist   prometheus.Histogram
	errors *prometheus.CounterVec
	clock  clockwork.Clock
	logger *slog.Logger
	ids    *atomic.Uint64

	mu      sync.Mutex
	running map[TimerID]time.Time
	count   uint64
	sum     time.Duration
	min     time.Duration
	max     time.Duration
	errs    map[ErrorKind]int
}

// Snapshot is a point-in-time copy of a TimingDistribution.
type Snapshot struct {
	Name    string
	Count   uint64
	Sum     time.Duration
	Min     time.Duration
	Max     time.Duration
	Running int
	Errors  map[ErrorKind]int
}

// Start begins a timer and returns its id.
func (t *TimingDistribution) Start() TimerID {
	id := TimerID(t.ids.Add(1))
	now := t.clock.Now()

	t.mu.Lock()
	t.running[id] = now
	t.mu.Unlock()
	return id
}

// StopAndAccumulate ends the timer and adds its elapsed time to the distribution.
func (t *TimingDistribution) StopAndAccumulate(id TimerID) {
	now := t.clock.Now()

	t.mu.Lock()
	started, ok := t.running[id]
	delete(t.running, id)
	t.mu.Unlock()

	if !ok {
		t.recordError(fmt.Errorf("stop %d: %w", id, ErrTimerNotRunning), id)
		return
	}
	t.accumulate(now.Sub(started), id)
}

// Cancel ends the timer without accumulating. Unknown ids are ignored.
func (t *TimingDistribution) Cancel(id TimerID) {
	t.mu.Lock()
	delete(t.running, id)
	t.mu.Unlock()
}

// AccumulateRawDuration adds an externally measured sample.
func (t *TimingDistribution) AccumulateRawDuration(d time.Duration) {
	t.accumulate(d, InvalidTimerID)
}

func (t *TimingDistribution) accumulate(d time.Duration, id TimerID) {
	if d < 0 {
		t.recordError(fmt.Errorf("sample %s: %w", d, ErrNegativeDuration), id)
		return
	}
	if d > MaxSampleTime {
		t.recordError(fmt.Errorf("sample %s: %w", d, ErrSampleOverflow), id)
		d = MaxSampleTime
	}

	t.mu.Lock()
	if t.count == 0 || d < t.min {
		t.min = d
	}
	if d > t.max {
		t.max = d
	}
	t.count++
	t.sum += d
	t.mu.Unlock()

	t.hist.Observe(float64(d) / float64(time.Millisecond))
}

func (t *TimingDistribution) recordError(err error, id TimerID) {
	kind := kindOf(err)

	t.mu.Lock()
	t.errs[kind]++
	t.mu.Unlock()

	t.errors.WithLabelValues(string(kind)).Inc()

	loggerOrDefault(t.logger).Debug("timing sample rejected",
		slog.String("metric", t.name),
		slog.String("error", err.Error()),
		slog.Uint64("timer_id", uint64(id)),
	)
}

// NumRecordedErrors reports how many errors of kind were recorded.
func (t *TimingDistribution) NumRecordedErrors(kind ErrorKind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errs[kind]
}

// Snapshot copies the current state.
func (t *TimingDistribution) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	errs := make(map[ErrorKind]int, len(t.errs))
	for k, v := range t.errs {
		errs[k] = v
	}
	return Snapshot{
		Name:    t.name,
		Count:   t.count,
		Sum:     t.sum,
		Min:     t.min,
		Max:     t.max,
		Running: len(t.running),
		Errors:  errs,
	}
}
