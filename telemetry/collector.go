// Package telemetry provides frame timing, per-window sketch stats, CSV output
// and flow-field snapshots.
package telemetry

import "github.com/pthm-cable/sketches/sketch"

// Collector decides when a telemetry window closes and turns sketch stats
// into CSV records.
type Collector struct {
	windowFrames int64
	windowStart  int64
}

// NewCollector creates a collector that closes a window every windowFrames
// stage frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: int64(windowFrames)}
}

// ShouldFlush reports whether frame closes the current window.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush summarises every mounted sketch and starts a new window at frame.
func (c *Collector) Flush(frame int64, view string, stats []sketch.Stats) []FrameStats {
	c.windowStart = frame
	out := make([]FrameStats, 0, len(stats))
	for _, st := range stats {
		out = append(out, Summarize(view, st))
	}
	return out
}

// Summarize converts one sketch snapshot into a FrameStats record.
func Summarize(view string, st sketch.Stats) FrameStats {
	mean, std, p50, p90 := SpeedSummary(st.Speeds)
	return FrameStats{
		Frame:     st.Frame,
		View:      view,
		Sketch:    string(st.Kind),
		Particles: st.Particles,
		Links:     st.Links,
		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}
}
