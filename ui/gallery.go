package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sketches/config"
)

// Gallery draws one tab button per configured view.
type Gallery struct {
	views  []config.ViewConfig
	x, y   float32
	height float32
	gap    float32
}

// NewGallery creates the tab strip for the given views.
func NewGallery(views []config.ViewConfig) *Gallery {
	return &Gallery{views: views, x: 10, y: 10, height: 30, gap: 8}
}

// Height returns the vertical space taken by the tab strip.
func (g *Gallery) Height() float32 {
	return g.y + g.height
}

// Tabs lays out one button per view across width. The current view's
// title is bracketed.
func (g *Gallery) Tabs(width float32, current string) ([]rl.Rectangle, []string) {
	n := float32(len(g.views))
	if n == 0 {
		return nil, nil
	}
	tabW := (width - 2*g.x - g.gap*(n-1)) / n
	tabW = min(tabW, 180)

	rects := make([]rl.Rectangle, len(g.views))
	labels := make([]string, len(g.views))
	for i, v := range g.views {
		rects[i] = rl.Rectangle{
			X:      g.x + float32(i)*(tabW+g.gap),
			Y:      g.y,
			Width:  tabW,
			Height: g.height,
		}
		labels[i] = v.Title
		if v.ID == current {
			labels[i] = "[" + v.Title + "]"
		}
	}
	return rects, labels
}

// Draw renders the tabs and returns the id of a clicked view, or "".
func (g *Gallery) Draw(width float32, current string) string {
	rects, labels := g.Tabs(width, current)
	selected := ""
	for i, r := range rects {
		if gui.Button(r, labels[i]) {
			selected = g.views[i].ID
		}
	}
	return selected
}
