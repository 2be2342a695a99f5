package ui

import (
	"testing"

	"github.com/pthm-cable/sketches/config"
)

func TestGalleryTabs(t *testing.T) {
	g := NewGallery(config.Default().Stage.Views)

	rects, labels := g.Tabs(1280, "mesh")
	if len(rects) != 5 || len(labels) != 5 {
		t.Fatalf("got %d tabs, want 5", len(rects))
	}
	if labels[3] != "[Interactive Mesh]" {
		t.Errorf("current tab label = %q", labels[3])
	}
	if labels[0] != "Home" {
		t.Errorf("first tab label = %q", labels[0])
	}
	for i := 1; i < len(rects); i++ {
		if rects[i].X <= rects[i-1].X+rects[i-1].Width {
			t.Errorf("tab %d overlaps tab %d", i, i-1)
		}
	}
	if rects[0].Width > 180 {
		t.Errorf("tab width %v above cap", rects[0].Width)
	}
}

func TestGalleryTabsNarrowWindow(t *testing.T) {
	g := NewGallery(config.Default().Stage.Views)
	rects, _ := g.Tabs(400, "home")
	last := rects[len(rects)-1]
	if last.X+last.Width > 400 {
		t.Errorf("tabs overflow a 400px window: right edge %v", last.X+last.Width)
	}
}

func TestGalleryNoViews(t *testing.T) {
	g := NewGallery(nil)
	if rects, _ := g.Tabs(800, ""); rects != nil {
		t.Error("expected no tabs")
	}
}
