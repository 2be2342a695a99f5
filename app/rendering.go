package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/renderer"
	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/stage"
	"github.com/pthm-cable/sketches/ui"
)

var (
	panelBg     = rl.Color{R: 10, G: 12, B: 16, A: 200}
	panelBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
)

const controlsLegend = "[1-5] view  [Space] pause  [H] hud  [P] perf  [F11] fullscreen"

// Draw presents the background, the view panel and the chrome.
func (a *App) Draw() {
	a.perf.RecordPresent()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	if bg := stage.Background(); bg != nil {
		present(bg.Surface(), 0, 0)
	}

	a.stage.Each(func(h *sketch.Handle, p stage.Panel) {
		x, y, w, hh := int32(p.X), int32(p.Y), int32(p.W), int32(p.H)
		rl.DrawRectangle(x, y, w, hh, panelBg)
		present(h.Surface(), float32(p.X), float32(p.Y))
		rl.DrawRectangleLines(x, y, w, hh, panelBorder)
	})

	if id := a.gallery.Draw(float32(a.width), a.stage.View()); id != "" {
		a.ShowView(id)
	}

	top := int32(a.gallery.Height()) + 10
	if a.showHUD {
		a.hud.Draw(ui.HUDData{
			Title:  "Sketches",
			View:   a.stage.View(),
			Frame:  a.stage.FrameCount(),
			FPS:    rl.GetFPS(),
			Paused: a.paused,
			Stats:  a.stage.Stats(),
		}, top)
	}
	if a.showPerf {
		a.perfPanel.SetPosition(int32(a.width)-230, top)
		a.perfPanel.Draw(a.perf.Stats())
	}
	a.hud.DrawControls(int32(a.height), controlsLegend)

	rl.EndDrawing()
}

func present(s canvas.Surface, x, y float32) {
	if rs, ok := s.(*renderer.Surface); ok {
		rs.Present(x, y)
	}
}
