//go:build !notelemetry

package telemetry

import (
	"time"

	"github.com/searchforge/render_telemetry/registry"
)

var backend = NewActive(registry.Default())

// BackendName reports which backend this binary was built with.
func BackendName() string { return "active" }

func StartRasterizeGlyphsTime() TimerID { return backend.StartRasterizeGlyphsTime() }

func StopAndAccumulateRasterizeGlyphsTime(id TimerID) {
	backend.StopAndAccumulateRasterizeGlyphsTime(id)
}

func StartFrameBuildTime() TimerID { return backend.StartFrameBuildTime() }

func StopAndAccumulateFrameBuildTime(id TimerID) { backend.StopAndAccumulateFrameBuildTime(id) }

func RecordSceneBuildTime(d time.Duration) { backend.RecordSceneBuildTime(d) }

func StartSceneSwapTime() TimerID { return backend.StartSceneSwapTime() }

func StopAndAccumulateSceneSwapTime(id TimerID) { backend.StopAndAccumulateSceneSwapTime(id) }

func CancelSceneSwapTime(id TimerID) { backend.CancelSceneSwapTime(id) }

// Default returns the backend the package-level functions use.
func Default() Backend { return backend }
