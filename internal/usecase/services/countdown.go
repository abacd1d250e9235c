package services

import (
	"sync"
	"time"
)

// countdown is the inactivity timer: it publishes the full duration
// immediately, then decrements once per interval, and fires onExpire
// exactly once when the remaining time reaches zero. stop is safe to
// call any number of times, including from inside onExpire.
type countdown struct {
	interval time.Duration
	onTick   func(remainingSeconds int)
	onExpire func()

	mu        sync.Mutex
	remaining int

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newCountdown(seconds int, interval time.Duration, onTick func(int), onExpire func()) *countdown {
	return &countdown{
		interval:  interval,
		onTick:    onTick,
		onExpire:  onExpire,
		remaining: seconds,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (c *countdown) start() {
	c.onTick(c.remainingSeconds())
	go c.run()
}

func (c *countdown) run() {
	ticker := time.NewTicker(c.interval)

	expired := false
loop:
	for {
		select {
		case <-c.stopCh:
			break loop
		case <-ticker.C:
			if c.advance() {
				expired = true
				break loop
			}
		}
	}

	ticker.Stop()
	// doneCh closes before onExpire so that an expiry path ending the
	// session can call stop without deadlocking on its own goroutine.
	close(c.doneCh)
	if expired {
		c.onExpire()
	}
}

// advance consumes one tick and reports whether the countdown expired.
func (c *countdown) advance() bool {
	c.mu.Lock()
	c.remaining--
	remaining := c.remaining
	c.mu.Unlock()

	c.onTick(remaining)
	return remaining <= 0
}

func (c *countdown) remainingSeconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// stop cancels the countdown and waits for its goroutine to wind down.
func (c *countdown) stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
	<-c.doneCh
}
