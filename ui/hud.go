package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title  string
	View   string
	Frame  int64
	FPS    int32
	Paused bool
	Stats  []sketch.Stats
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// hudLine is one label/value row of the HUD.
type hudLine struct {
	label, value string
}

// hudLines formats the rows drawn under the title.
func hudLines(data HUDData) []hudLine {
	lines := []hudLine{
		{"view", data.View},
		{"frame", fmt.Sprintf("%d (%d fps)", data.Frame, data.FPS)},
	}
	for _, st := range data.Stats {
		value := fmt.Sprintf("%d particles", st.Particles)
		if st.Links > 0 {
			value += fmt.Sprintf(", %d links", st.Links)
		}
		lines = append(lines, hudLine{string(st.Kind), value})
	}
	return lines
}

// Draw renders the HUD below the gallery tabs.
func (h *HUD) Draw(data HUDData, y int32) {
	r := h.renderer
	x := r.Theme.Padding
	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 25

	for _, line := range hudLines(data) {
		y = r.DrawLabelValue(x, y, line.label, line.value)
	}
	if data.Paused {
		r.DrawSectionHeader(x, y, "PAUSED")
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	r := h.renderer
	rl.DrawText(controls, r.Theme.Padding, screenHeight-25, r.Theme.FontSize, r.Theme.LabelColor)
}

// PerfPanel renders frame timing by phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*7 + pad*2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Frame Performance")
	y = r.DrawLabelValue(x, y, "avg", stats.AvgFrame.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "max", stats.MaxFrame.Round(time.Microsecond).String())
	for _, phase := range []string{telemetry.PhaseStage, telemetry.PhaseUpdate, telemetry.PhaseDraw} {
		y = r.DrawBar(x, y, phase, stats.PhasePct[phase], p.width-2*pad)
	}
}
