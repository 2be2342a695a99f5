package app

import (
	"path/filepath"

	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/stage"
	"github.com/pthm-cable/sketches/systems"
	"github.com/pthm-cable/sketches/telemetry"
)

// flushTelemetry writes frame and perf stats when a window closes.
func (a *App) flushTelemetry() {
	frame := a.stage.FrameCount()
	if !a.collector.ShouldFlush(frame) {
		return
	}

	rows := a.collector.Flush(frame, a.stage.View(), a.stage.Stats())
	perfStats := a.perf.Stats()

	if a.opts.LogStats {
		for _, row := range rows {
			a.logger.Info("frame stats", "stats", row)
		}
		a.logger.Info("perf", "stats", perfStats)
	}

	if err := a.output.WriteFrames(rows); err != nil {
		a.logger.Error("failed to write frames", "error", err)
	}
	if err := a.output.WritePerf(perfStats, frame); err != nil {
		a.logger.Error("failed to write perf", "error", err)
	}
}

// saveSnapshots writes the particle state of every running flow field.
func (a *App) saveSnapshots() {
	if a.output == nil {
		return
	}
	dir := filepath.Join(a.output.Dir(), "snapshots")

	save := func(name string, h *sketch.Handle) {
		if h == nil {
			return
		}
		flow, ok := h.Simulation().(*systems.FlowField)
		if !ok {
			return
		}
		path, err := telemetry.SaveSnapshot(telemetry.CaptureFlow(flow), name, h.FrameCount(), dir)
		if err != nil {
			a.logger.Error("failed to save snapshot", "sketch", name, "error", err)
			return
		}
		a.logger.Info("snapshot saved", "path", path)
	}

	save("background", stage.Background())
	for _, h := range a.stage.Handles() {
		save(a.stage.View(), h)
	}
}
