// Command termview runs one sketch in the terminal.
//
// The mouse moves the pointer, resizing the terminal reflows the sketch and
// q or Esc quits.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/sketches/config"
	"github.com/pthm-cable/sketches/sketch"
	"github.com/pthm-cable/sketches/termview"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	kind := flag.String("sketch", "mesh", "Sketch to run (flow, wave, mesh, emitter)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	logFile := flag.String("log-file", "", "Write JSON logs to this file (empty = discard)")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termview: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	if err := run(*configPath, sketch.Kind(*kind), *seed, *fps, logger); err != nil {
		logger.Error("termview failed", "error", err)
		fmt.Fprintf(os.Stderr, "termview: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, kind sketch.Kind, seed int64, fps int, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	h, err := sketch.New(kind, termview.Factory(screen), sketch.Options{Config: cfg, Seed: seed, Logger: logger})
	if err != nil {
		return err
	}
	defer h.Dispose()

	cols, rows := screen.Size()
	w, hh := termview.CanvasSize(cols, rows)
	if err := h.Mount(sketch.Size{W: w, H: hh}); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen.PollEvent, events, done)

	for {
		select {
		case ev := <-events:
			if !handleEvent(screen, h, ev) {
				return nil
			}
		case <-ticker.C:
			h.Frame()
			screen.Show()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil (screen
// finalized) or done is closed.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent applies one terminal event. It returns false when the user quits.
func handleEvent(screen tcell.Screen, h *sketch.Handle, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			h.Dispose()
			return false
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		h.OnPointerMove(termview.CellCenter(x, y))

	case *tcell.EventResize:
		screen.Sync()
		cols, rows := ev.Size()
		w, hh := termview.CanvasSize(cols, rows)
		h.OnResize(sketch.Size{W: w, H: hh})
	}
	return true
}
