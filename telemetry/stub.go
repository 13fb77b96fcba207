package telemetry

import "time"

// Stub discards every measurement.
type Stub struct{}

func (Stub) StartRasterizeGlyphsTime() TimerID            { return TimerID{} }
func (Stub) StopAndAccumulateRasterizeGlyphsTime(TimerID) {}
func (Stub) StartFrameBuildTime() TimerID                 { return TimerID{} }
func (Stub) StopAndAccumulateFrameBuildTime(TimerID)      {}
func (Stub) RecordSceneBuildTime(time.Duration)           {}
func (Stub) StartSceneSwapTime() TimerID                  { return TimerID{} }
func (Stub) StopAndAccumulateSceneSwapTime(TimerID)       {}
func (Stub) CancelSceneSwapTime(TimerID)                  {}
