package exam

import (
	"sync"
	"time"
)

// Ticker drives a session countdown with one tick per second. It owns an
// explicit start/stop lifecycle tied to the session: Stop blocks until
// the tick loop has exited, so no callback can fire against a session
// that has been torn down.
type Ticker struct {
	interval time.Duration

	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewTicker creates a ticker with the standard 1-second interval.
func NewTicker() *Ticker {
	return newTicker(time.Second)
}

func newTicker(interval time.Duration) *Ticker {
	return &Ticker{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the tick loop. The interval begins counting from this
// call, so a restarted session always ticks from a fresh boundary.
// The callback returns false to end the loop (session finished); the
// loop also ends when Stop is called. Start must be called at most once.
func (t *Ticker) Start(tick func() bool) {
	t.mu.Lock()
	t.started = true
	t.mu.Unlock()

	go func() {
		defer close(t.done)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				if !tick() {
					return
				}
			}
		}
	}()
}

// Stop ends the tick loop and waits for it to exit. Idempotent; safe to
// call on a ticker whose loop already finished on its own.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })

	t.mu.Lock()
	started := t.started
	t.mu.Unlock()
	if started {
		<-t.done
	}
}
