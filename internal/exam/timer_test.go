package exam

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerTicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64

	tk := newTicker(time.Millisecond)
	tk.Start(func() bool {
		ticks.Add(1)
		return true
	})

	time.Sleep(20 * time.Millisecond)
	tk.Stop()
	after := ticks.Load()

	if after == 0 {
		t.Fatal("ticker never ticked")
	}

	// No callback may fire after Stop returns.
	time.Sleep(10 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Fatalf("tick fired after Stop: %d -> %d", after, got)
	}
}

func TestTickerCallbackEndsLoop(t *testing.T) {
	var ticks atomic.Int64

	tk := newTicker(time.Millisecond)
	tk.Start(func() bool {
		return ticks.Add(1) < 3
	})

	time.Sleep(20 * time.Millisecond)
	if got := ticks.Load(); got != 3 {
		t.Fatalf("ticks = %d, want 3 (loop must end when callback returns false)", got)
	}

	// Stop on a self-ended ticker must not hang.
	tk.Stop()
}

func TestTickerStopIdempotent(t *testing.T) {
	tk := newTicker(time.Millisecond)
	tk.Start(func() bool { return true })
	tk.Stop()
	tk.Stop()
}

func TestTickerStopWithoutStart(t *testing.T) {
	tk := newTicker(time.Millisecond)
	tk.Stop() // must not block waiting for a loop that never ran
}
