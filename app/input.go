package app

import rl "github.com/gen2brain/raylib-go/raylib"

var viewKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine}

// handleInput processes keyboard and mouse input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.showPerf = !a.showPerf
	}

	for i, key := range viewKeys {
		if i >= len(a.cfg.Stage.Views) {
			break
		}
		if rl.IsKeyPressed(key) {
			a.ShowView(a.cfg.Stage.Views[i].ID)
		}
	}

	a.handlePointer()
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.width = int(rl.GetScreenWidth())
	a.height = int(rl.GetScreenHeight())
	a.stage.Resize(a.width, a.height)
}

// handlePointer forwards the mouse to the stage while it is over the window.
func (a *App) handlePointer() {
	if !rl.IsCursorOnScreen() {
		if a.pointerInside {
			a.stage.PointerLeave()
			a.pointerInside = false
		}
		return
	}
	pos := rl.GetMousePosition()
	a.stage.PointerMove(float64(pos.X), float64(pos.Y))
	a.pointerInside = true
}
