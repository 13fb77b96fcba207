package registry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, opts ...Option) (*Registry, *clockwork.FakeClock, *prometheus.Registry) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	promReg := prometheus.NewRegistry()
	opts = append([]Option{WithRegisterer(promReg), WithClock(clock)}, opts...)
	return New(opts...), clock, promReg
}

func TestStartStopAccumulatesElapsed(t *testing.T) {
	reg, clock, _ := newTestRegistry(t)
	td := reg.TimingDistribution("framebuild_time", "frame build")

	id := td.Start()
	require.NotEqual(t, InvalidTimerID, id)
	clock.Advance(4 * time.Millisecond)
	td.StopAndAccumulate(id)

	snap := td.Snapshot()
	assert.EqualValues(t, 1, snap.Count)
	assert.Equal(t, 4*time.Millisecond, snap.Sum)
	assert.Zero(t, snap.Running)
}

func TestStopTwiceRecordsInvalidState(t *testing.T) {
	reg, clock, _ := newTestRegistry(t)
	td := reg.TimingDistribution("rasterize_glyphs_time", "glyphs")

	id := td.Start()
	clock.Advance(time.Millisecond)
	td.StopAndAccumulate(id)
	td.StopAndAccumulate(id)

	assert.EqualValues(t, 1, td.Snapshot().Count)
	assert.Equal(t, 1, td.NumRecordedErrors(InvalidState))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.errors.WithLabelValues("rasterize_glyphs_time", string(InvalidState))))
}

func TestRecordingErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg, _, _ := newTestRegistry(t, WithLogger(logger))
	td := reg.TimingDistribution("framebuild_time", "frame build")

	id := td.Start()
	td.StopAndAccumulate(id)
	td.StopAndAccumulate(id)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "framebuild_time", record["metric"])
	assert.Contains(t, record["error"], ErrTimerNotRunning.Error())
	assert.EqualValues(t, id, record["timer_id"])
}

func TestCancelDoesNotAccumulate(t *testing.T) {
	reg, clock, _ := newTestRegistry(t)
	td := reg.TimingDistribution("sceneswap_time", "swap")

	id := td.Start()
	clock.Advance(time.Second)
	td.Cancel(id)
	td.Cancel(id)
	td.Cancel(InvalidTimerID)

	snap := td.Snapshot()
	assert.Zero(t, snap.Count)
	assert.Zero(t, snap.Running)
	assert.Empty(t, snap.Errors, "cancel of unknown ids must not record errors")

	td.StopAndAccumulate(id)
	assert.Equal(t, 1, td.NumRecordedErrors(InvalidState))
}

func TestAccumulateRawDuration(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	td := reg.TimingDistribution("scenebuild_time", "scene build")

	td.AccumulateRawDuration(12 * time.Millisecond)
	td.AccumulateRawDuration(3 * time.Millisecond)

	snap := td.Snapshot()
	assert.EqualValues(t, 2, snap.Count)
	assert.Equal(t, 15*time.Millisecond, snap.Sum)
	assert.Equal(t, 3*time.Millisecond, snap.Min)
	assert.Equal(t, 12*time.Millisecond, snap.Max)
}

func TestAccumulateRejectsNegativeAndClampsOverflow(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	td := reg.TimingDistribution("scenebuild_time", "scene build")

	td.AccumulateRawDuration(-time.Millisecond)
	td.AccumulateRawDuration(time.Hour)

	snap := td.Snapshot()
	assert.EqualValues(t, 1, snap.Count)
	assert.Equal(t, MaxSampleTime, snap.Sum)
	assert.Equal(t, 1, snap.Errors[InvalidValue])
	assert.Equal(t, 1, snap.Errors[InvalidOverflow])
}

func TestTimerIDsAreUniqueAcrossMetrics(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	a := reg.TimingDistribution("a", "a")
	b := reg.TimingDistribution("b", "b")

	idA := a.Start()
	idB := b.Start()
	require.NotEqual(t, idA, idB)

	b.StopAndAccumulate(idA)
	assert.Equal(t, 1, b.NumRecordedErrors(InvalidState))
	assert.Equal(t, 1, a.Snapshot().Running, "foreign stop must not consume the owner's timer")
}
