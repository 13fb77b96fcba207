package api

import (
	"time"

	"github.com/searchforge/render_telemetry/registry"
)

// TimingV1 is the public schema for one metric under /v1/timings.
type TimingV1 struct {
	Name    string         `json:"name"`
	Count   uint64         `json:"count"`
	SumMS   float64        `json:"sum_ms"`
	MeanMS  float64        `json:"mean_ms"`
	MinMS   float64        `json:"min_ms"`
	MaxMS   float64        `json:"max_ms"`
	Running int            `json:"running"`
	Errors  map[string]int `json:"errors,omitempty"`
}

// TimingsResponseV1 is the public response schema for /v1/timings.
type TimingsResponseV1 struct {
	Backend string     `json:"backend"`
	Timings []TimingV1 `json:"timings"`
}

func toTimingV1(s registry.Snapshot) TimingV1 {
	out := TimingV1{
		Name:    s.Name,
		Count:   s.Count,
		SumMS:   ms(s.Sum),
		MinMS:   ms(s.Min),
		MaxMS:   ms(s.Max),
		Running: s.Running,
	}
	if s.Count > 0 {
		out.MeanMS = out.SumMS / float64(s.Count)
	}
	if len(s.Errors) > 0 {
		out.Errors = make(map[string]int, len(s.Errors))
		for kind, n := range s.Errors {
			out.Errors[string(kind)] = n
		}
	}
	return out
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
