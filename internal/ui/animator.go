package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// animator runs a step function on the UI goroutine until it stops
// asking for another frame. step returns the delay before the next frame,
// or 0 when done. Starting again cancels the running loop.
type animator struct {
	mu     sync.Mutex
	cancel chan struct{}
}

func (a *animator) Start(first time.Duration, step func() time.Duration) {
	a.Stop()

	done := make(chan struct{})
	a.mu.Lock()
	a.cancel = done
	a.mu.Unlock()

	go func() {
		defer a.finished(done)

		next := first
		for next > 0 {
			timer := time.NewTimer(next)
			select {
			case <-done:
				timer.Stop()
				return
			case <-timer.C:
			}

			fyne.DoAndWait(func() {
				select {
				case <-done:
					next = 0
				default:
					next = step()
				}
			})
		}
	}()
}

// Stop cancels the running loop, if any
func (a *animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel != nil {
		close(a.cancel)
		a.cancel = nil
	}
}

func (a *animator) finished(done chan struct{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancel == done {
		a.cancel = nil
	}
}

// Running reports whether a loop was started and not stopped
func (a *animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancel != nil
}
