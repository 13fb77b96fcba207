//go:build notelemetry

package telemetry

import "time"

var backend Stub

// BackendName reports which backend this binary was built with.
func BackendName() string { return "stub" }

func StartRasterizeGlyphsTime() TimerID            { return TimerID{} }
func StopAndAccumulateRasterizeGlyphsTime(TimerID) {}
func StartFrameBuildTime() TimerID                 { return TimerID{} }
func StopAndAccumulateFrameBuildTime(TimerID)      {}
func RecordSceneBuildTime(time.Duration)           {}
func StartSceneSwapTime() TimerID                  { return TimerID{} }
func StopAndAccumulateSceneSwapTime(TimerID)       {}
func CancelSceneSwapTime(TimerID)                  {}

// Default returns the backend the package-level functions use.
func Default() Backend { return backend }
