package telemetry

import (
	"time"

	"github.com/searchforge/render_telemetry/registry"
)

// Metric is the per-phase timer API Active delegates to.
// *registry.TimingDistribution implements it.
type Metric interface {
	Start() registry.TimerID
	StopAndAccumulate(id registry.TimerID)
	Cancel(id registry.TimerID)
	AccumulateRawDuration(d time.Duration)
}

// Metrics binds one Metric to each phase.
type Metrics struct {
	RasterizeGlyphs Metric
	FrameBuild      Metric
	SceneBuild      Metric
	SceneSwap       Metric
}

// Active forwards every operation to the metric of its phase.
type Active struct {
	rasterizeGlyphs Metric
	frameBuild      Metric
	sceneBuild      Metric
	sceneSwap       Metric
}

var phaseHelp = map[Phase]string{
	PhaseRasterizeGlyphs: "Time spent rasterizing glyphs, in milliseconds.",
	PhaseFrameBuild:      "Time spent building a frame, in milliseconds.",
	PhaseSceneBuild:      "Time spent building a scene, in milliseconds.",
	PhaseSceneSwap:       "Time from scene build completion to swap, in milliseconds.",
}

// NewActive creates the four phase metrics in reg. A nil reg yields an Active
// that discards everything.
func NewActive(reg *registry.Registry) *Active {
	if reg == nil {
		return NewActiveFromMetrics(Metrics{})
	}
	metric := func(p Phase) Metric {
		return reg.TimingDistribution(p.String(), phaseHelp[p])
	}
	return NewActiveFromMetrics(Metrics{
		RasterizeGlyphs: metric(PhaseRasterizeGlyphs),
		FrameBuild:      metric(PhaseFrameBuild),
		SceneBuild:      metric(PhaseSceneBuild),
		SceneSwap:       metric(PhaseSceneSwap),
	})
}

// NewActiveFromMetrics wraps caller-supplied metrics. Unset fields discard
// their phase's measurements.
func NewActiveFromMetrics(m Metrics) *Active {
	return &Active{
		rasterizeGlyphs: orNoop(m.RasterizeGlyphs),
		frameBuild:      orNoop(m.FrameBuild),
		sceneBuild:      orNoop(m.SceneBuild),
		sceneSwap:       orNoop(m.SceneSwap),
	}
}

type noopMetric struct{}

func (noopMetric) Start() registry.TimerID             { return registry.InvalidTimerID }
func (noopMetric) StopAndAccumulate(registry.TimerID)  {}
func (noopMetric) Cancel(registry.TimerID)             {}
func (noopMetric) AccumulateRawDuration(time.Duration) {}

func orNoop(m Metric) Metric {
	if m == nil {
		return noopMetric{}
	}
	return m
}

// idFor unwraps id for a terminal call on phase p. A handle issued by another
// phase maps to InvalidTimerID so it cannot consume a foreign timer.
func idFor(p Phase, id TimerID) registry.TimerID {
	if id.phase != p {
		return registry.InvalidTimerID
	}
	return id.id
}

func (a *Active) StartRasterizeGlyphsTime() TimerID {
	if a == nil {
		return TimerID{}
	}
	return TimerID{phase: PhaseRasterizeGlyphs, id: a.rasterizeGlyphs.Start()}
}

func (a *Active) StopAndAccumulateRasterizeGlyphsTime(id TimerID) {
	if a == nil {
		return
	}
	a.rasterizeGlyphs.StopAndAccumulate(idFor(PhaseRasterizeGlyphs, id))
}

func (a *Active) StartFrameBuildTime() TimerID {
	if a == nil {
		return TimerID{}
	}
	return TimerID{phase: PhaseFrameBuild, id: a.frameBuild.Start()}
}

func (a *Active) StopAndAccumulateFrameBuildTime(id TimerID) {
	if a == nil {
		return
	}
	a.frameBuild.StopAndAccumulate(idFor(PhaseFrameBuild, id))
}

func (a *Active) RecordSceneBuildTime(d time.Duration) {
	if a == nil {
		return
	}
	a.sceneBuild.AccumulateRawDuration(d)
}

func (a *Active) StartSceneSwapTime() TimerID {
	if a == nil {
		return TimerID{}
	}
	return TimerID{phase: PhaseSceneSwap, id: a.sceneSwap.Start()}
}

func (a *Active) StopAndAccumulateSceneSwapTime(id TimerID) {
	if a == nil {
		return
	}
	a.sceneSwap.StopAndAccumulate(idFor(PhaseSceneSwap, id))
}

func (a *Active) CancelSceneSwapTime(id TimerID) {
	if a == nil {
		return
	}
	a.sceneSwap.Cancel(idFor(PhaseSceneSwap, id))
}
