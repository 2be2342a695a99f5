package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestPumpEventsStopsWhenDone(t *testing.T) {
	poll := func() tcell.Event { return tcell.NewEventInterrupt(nil) }
	events := make(chan tcell.Event, 1)
	done := make(chan struct{})

	exited := make(chan struct{})
	go func() {
		pumpEvents(poll, events, done)
		close(exited)
	}()

	// Let the buffer fill so the pump blocks on send
	<-events
	close(done)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("pump still running after done was closed")
	}
}

func TestPumpEventsStopsOnNil(t *testing.T) {
	calls := 0
	poll := func() tcell.Event {
		calls++
		if calls > 3 {
			return nil
		}
		return tcell.NewEventInterrupt(nil)
	}
	events := make(chan tcell.Event, 10)

	pumpEvents(poll, events, make(chan struct{}))

	if len(events) != 3 {
		t.Errorf("forwarded %d events, want 3", len(events))
	}
}
