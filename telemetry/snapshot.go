package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/sketches/systems"
)

// ParticleState is one flow-field particle in a snapshot.
type ParticleState struct {
	Index    int     `csv:"index"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VelX     float64 `csv:"vel_x"`
	VelY     float64 `csv:"vel_y"`
	MaxSpeed float64 `csv:"max_speed"`
	Size     float64 `csv:"size"`
}

// CaptureFlow copies the particle state of a flow field.
func CaptureFlow(f *systems.FlowField) []ParticleState {
	out := make([]ParticleState, len(f.Particles))
	for i := range f.Particles {
		p := &f.Particles[i]
		out[i] = ParticleState{
			Index:    i,
			X:        p.Pos.X,
			Y:        p.Pos.Y,
			VelX:     p.Vel.X,
			VelY:     p.Vel.Y,
			MaxSpeed: p.MaxSpeed,
			Size:     p.Size,
		}
	}
	return out
}

// SaveSnapshot writes a flow snapshot taken at frame to dir as
// <name>_<frame>.csv. Returns the filepath where it was saved.
func SaveSnapshot(states []ParticleState, name string, frame int64, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%d.csv", name, frame))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&states, f); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a flow snapshot from disk.
func LoadSnapshot(path string) ([]ParticleState, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	defer f.Close()

	var states []ParticleState
	if err := gocsv.UnmarshalFile(f, &states); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return states, nil
}
