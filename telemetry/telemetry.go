// Package telemetry is the timing facade used by the render pipeline.
//
// Each phase has its own entry points. Glyph rasterization, frame build and
// scene swap are measured with a start call that returns a TimerID and a
// terminal call that consumes it; scene build is measured by the caller and
// injected with RecordSceneBuildTime.
//
// The destination is chosen when the binary is built:
//
//	go build                    // Active, backed by registry.Default()
//	go build -tags notelemetry  // Stub, every call is a no-op
//
// Package-level functions call the selected backend directly. Components that
// prefer injection can hold a Backend instead; Stub and Active both satisfy it.
//
// A TimerID must be passed to exactly one terminal call of the phase that
// issued it. The facade does not enforce this. Stub tolerates any misuse;
// Active forwards misuse to the registry, which counts and drops it.
package telemetry

import (
	"time"

	"github.com/searchforge/render_telemetry/registry"
)

// Phase is a fixed category of pipeline work whose duration is tracked.
type Phase uint8

const (
	PhaseRasterizeGlyphs Phase = iota + 1
	PhaseFrameBuild
	PhaseSceneBuild
	PhaseSceneSwap
)

// String returns the metric name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseRasterizeGlyphs:
		return "rasterize_glyphs_time"
	case PhaseFrameBuild:
		return "framebuild_time"
	case PhaseSceneBuild:
		return "scenebuild_time"
	case PhaseSceneSwap:
		return "sceneswap_time"
	default:
		return "unknown"
	}
}

// Phases lists every phase in a stable order.
func Phases() []Phase {
	return []Phase{PhaseRasterizeGlyphs, PhaseFrameBuild, PhaseSceneBuild, PhaseSceneSwap}
}

// TimerID correlates a start call with its terminal call. The zero value is
// the placeholder returned by Stub.
type TimerID struct {
	phase Phase
	id    registry.TimerID
}

// Phase reports which phase issued the handle.
func (t TimerID) Phase() Phase {
	return t.phase
}

// Backend is the set of timing operations exposed to the pipeline.
type Backend interface {
	StartRasterizeGlyphsTime() TimerID
	StopAndAccumulateRasterizeGlyphsTime(id TimerID)

	StartFrameBuildTime() TimerID
	StopAndAccumulateFrameBuildTime(id TimerID)

	RecordSceneBuildTime(d time.Duration)

	StartSceneSwapTime() TimerID
	StopAndAccumulateSceneSwapTime(id TimerID)
	CancelSceneSwapTime(id TimerID)
}

var (
	_ Backend = Stub{}
	_ Backend = (*Active)(nil)
)
