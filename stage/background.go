package stage

import (
	"fmt"
	"sync"

	"github.com/pthm-cable/sketches/canvas"
	"github.com/pthm-cable/sketches/sketch"
)

// The process-wide background flow field.
var (
	bgMu       sync.Mutex
	background *sketch.Handle
)

// InitBackground mounts the background flow field. It fails if a running
// background already exists; a disposed one is replaced.
func InitBackground(factory canvas.Factory, size sketch.Size, opts sketch.Options) error {
	bgMu.Lock()
	defer bgMu.Unlock()

	if background != nil && background.State() == sketch.StateRunning {
		return fmt.Errorf("init background: %w", sketch.ErrAlreadyMounted)
	}
	h, err := sketch.Mount(sketch.KindFlow, factory, size, opts)
	if err != nil {
		return fmt.Errorf("init background: %w", err)
	}
	background = h
	return nil
}

// Background returns the background handle, or nil before InitBackground.
func Background() *sketch.Handle {
	bgMu.Lock()
	defer bgMu.Unlock()
	return background
}

// DisposeBackground releases the background. Safe to call more than once.
func DisposeBackground() {
	bgMu.Lock()
	defer bgMu.Unlock()
	if background != nil {
		background.Dispose()
		background = nil
	}
}
