// Noise preview tool - interactive view of the noise backends and the flow
// forces they produce.
//
// Usage: go run ./cmd/noisepreview [-config path]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
	gridSize     = 256
	arrowStep    = 32 // preview pixels between flow arrows
)

var backends = []string{"perlin", "opensimplex", "aquilax"}

// PreviewParams holds the sampled noise slice.
type PreviewParams struct {
	Backend  int
	Octaves  int
	Scale    float32 // noise units per canvas pixel
	Time     float32 // frame number fed to the time axis
	Seed     int64
	Strength float32
}

func defaultParams(cfg *config.Config) PreviewParams {
	return PreviewParams{
		Octaves:  cfg.Noise.Octaves,
		Scale:    float32(cfg.Flow.SpatialScale),
		Strength: float32(cfg.Flow.Strength),
		Seed:     1,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config file (optional, uses embedded defaults if empty)")
	flag.Parse()

	config.MustInit(*configPath)
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Noise Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams(cfg)

	grid := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	animating := false
	needsRegen := true
	var noise systems.Noise

	for !rl.WindowShouldClose() {
		if animating {
			params.Time++
			needsRegen = true
		}

		if needsRegen {
			n, err := systems.NewNoise(backends[params.Backend], params.Seed, params.Octaves)
			if err != nil {
				slog.Error("failed to build noise", "error", err)
				os.Exit(1)
			}
			noise = n
			sampleGrid(grid, noise, params, cfg.Flow.TimeScale)
			updateTexture(texture, grid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		drawFlowArrows(noise, params, cfg.Flow)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		minVal, maxVal, avg := gridStats(grid)
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Avg: %.3f", minVal, maxVal, avg), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Frame: %.0f", params.Time), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 250, Height: 30}, "Backend: "+backends[params.Backend]) {
			params.Backend = (params.Backend + 1) % len(backends)
			needsRegen = true
		}
		panelY += 45

		rl.DrawText("Spatial scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.001", "0.05",
			params.Scale, 0.001, 0.05,
		)
		rl.DrawText(fmt.Sprintf("%.4f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Octaves", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOctaves := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "6",
			float32(params.Octaves), 1, 6,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newOctaves) != params.Octaves {
			params.Octaves = int(newOctaves)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Flow strength", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		params.Strength = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "0.5",
			params.Strength, 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Strength), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int64(newSeed) != params.Seed {
			params.Seed = int64(newSeed)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			params.Time = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams(cfg)
			needsRegen = true
		}
		panelY += 55

		yaml := configYAML(params)
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

func configYAML(p PreviewParams) string {
	return fmt.Sprintf("noise:\n  backend: %s\n  octaves: %d\nflow:\n  spatial_scale: %.4f\n  strength: %.2f",
		backends[p.Backend], p.Octaves, p.Scale, p.Strength)
}

// sampleGrid fills the grid with the x channel the flow field reads.
// Grid cells map onto the full preview in canvas pixels.
func sampleGrid(grid []float64, noise systems.Noise, p PreviewParams, timeScale float64) {
	const pxPerCell = float64(previewSize) / gridSize
	z := float64(p.Time) * timeScale
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			px := (float64(x) + 0.5) * pxPerCell * float64(p.Scale)
			py := (float64(y) + 0.5) * pxPerCell * float64(p.Scale)
			grid[y*gridSize+x] = noise.Noise3(px, py, z)
		}
	}
}

// drawFlowArrows overlays the force the flow field would apply.
func drawFlowArrows(noise systems.Noise, p PreviewParams, flow config.FlowConfig) {
	if noise == nil {
		return
	}
	z := float64(p.Time) * flow.TimeScale
	s := float64(p.Strength)
	for y := arrowStep / 2; y < previewSize; y += arrowStep {
		for x := arrowStep / 2; x < previewSize; x += arrowStep {
			nx := float64(x) * float64(p.Scale)
			ny := float64(y) * float64(p.Scale)
			fx := noise.Noise3(nx, ny, z)*s - s/2
			fy := noise.Noise3(nx, ny, z+flow.YOffset)*s - s/2

			// Scale so the strongest force spans most of a cell
			k := float64(arrowStep) * 0.8 / max(s, 1e-6)
			start := rl.Vector2{X: float32(10 + x), Y: float32(10 + y)}
			end := rl.Vector2{X: start.X + float32(fx*k), Y: start.Y + float32(fy*k)}
			rl.DrawLineEx(start, end, 1.5, rl.White)
			rl.DrawCircleV(end, 2, rl.White)
		}
	}
}

func gridStats(grid []float64) (minVal, maxVal, avg float64) {
	minVal, maxVal = 1, 0
	var total float64
	for _, v := range grid {
		total += v
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	return minVal, maxVal, total / float64(len(grid))
}

// updateTexture updates the GPU texture from the grid values
func updateTexture(texture rl.Texture2D, grid []float64) {
	pixels := make([]color.RGBA, len(grid))
	for i, v := range grid {
		// Dark blue -> cyan -> yellow -> white
		var r, g, b float64
		switch {
		case v < 0.25:
			t := v / 0.25
			r, g, b = 10+t*30, 20+t*60, 60+t*100
		case v < 0.5:
			t := (v - 0.25) / 0.25
			r, g, b = 40+t*20, 80+t*120, 160+t*40
		case v < 0.75:
			t := (v - 0.5) / 0.25
			r, g, b = 60+t*140, 200-t*40, 200-t*150
		default:
			t := (v - 0.75) / 0.25
			r, g, b = 200+t*55, 160+t*95, 50+t*205
		}
		pixels[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
