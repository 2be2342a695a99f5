package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameStats summarises one sketch at the end of a telemetry window.
type FrameStats struct {
	Frame     int64   `csv:"frame"`
	View      string  `csv:"view"`
	Sketch    string  `csv:"sketch"`
	Particles int     `csv:"particles"`
	Links     int     `csv:"links"`
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// SpeedSummary computes mean, standard deviation and quantiles of a speed
// sample. The input is not modified.
func SpeedSummary(speeds []float64) (mean, std, p50, p90 float64) {
	if len(speeds) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	mean, std = stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}
	p50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frame", s.Frame),
		slog.String("view", s.View),
		slog.String("sketch", s.Sketch),
		slog.Int("particles", s.Particles),
		slog.Int("links", s.Links),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}
