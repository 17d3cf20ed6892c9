package session

import (
	"sync"
	"time"
)

// countdown calls tick once per interval on its own goroutine until
// stopped. Stop is safe to call more than once and from inside tick.
type countdown struct {
	stop chan struct{}
	once sync.Once
}

func startCountdown(interval time.Duration, tick func()) *countdown {
	c := &countdown{stop: make(chan struct{})}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-t.C:
				tick()
			}
		}
	}()
	return c
}

func (c *countdown) Stop() {
	c.once.Do(func() { close(c.stop) })
}
