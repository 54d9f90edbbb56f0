package domtest

import (
	"sort"
	"time"

	"github.com/vango-dev/popover/pkg/dom"
)

// Clock is a manual dom.Scheduler. Timers only fire from Advance.
type Clock struct {
	now    time.Duration
	seq    int
	timers []*timer
}

var _ dom.Scheduler = (*Clock)(nil)

type timer struct {
	clock *Clock
	at    time.Duration
	seq   int
	fn    func()
	done  bool
}

// Stop implements dom.Timer.
func (t *timer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.drop(t)
	return true
}

// NewClock creates a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc implements dom.Scheduler.
func (c *Clock) AfterFunc(d time.Duration, fn func()) dom.Timer {
	c.seq++
	t := &timer{clock: c, at: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration { return c.now }

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int { return len(c.timers) }

// Advance moves time forward by d, firing due timers in order. Timers
// scheduled by callbacks fire too if they fall within the window.
func (c *Clock) Advance(d time.Duration) {
	end := c.now + d
	for {
		t := c.nextDue(end)
		if t == nil {
			break
		}
		c.now = t.at
		t.done = true
		c.drop(t)
		t.fn()
	}
	c.now = end
}

func (c *Clock) nextDue(end time.Duration) *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].at != c.timers[j].at {
			return c.timers[i].at < c.timers[j].at
		}
		return c.timers[i].seq < c.timers[j].seq
	})
	if t := c.timers[0]; t.at <= end {
		return t
	}
	return nil
}

func (c *Clock) drop(t *timer) {
	for i, x := range c.timers {
		if x == t {
			c.timers = append(c.timers[:i:i], c.timers[i+1:]...)
			return
		}
	}
}
