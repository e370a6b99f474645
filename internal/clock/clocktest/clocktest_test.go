package clocktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	c := New()
	var fired []string

	c.AfterFunc(30*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "a") })
	c.AfterFunc(50*time.Millisecond, func() { fired = append(fired, "c") })

	c.Advance(40 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, 1, c.Pending())

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, c.Pending())
}

func TestCallbacksMayRescheduleWithinTheWindow(t *testing.T) {
	c := New()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		if ticks < 4 {
			c.AfterFunc(10*time.Millisecond, tick)
		}
	}
	c.AfterFunc(10*time.Millisecond, tick)

	c.Advance(35 * time.Millisecond)
	assert.Equal(t, 3, ticks, "ticks at 10, 20, 30; the 40ms tick is still ahead")
	assert.Equal(t, 1, c.Pending())
}

func TestStop(t *testing.T) {
	c := New()
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop(), "second stop reports already stopped")

	c.Advance(time.Second)
	assert.False(t, fired)
	assert.Zero(t, c.Pending())
}

func TestEqualDeadlinesKeepSchedulingOrder(t *testing.T) {
	c := New()
	var fired []string
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "first") })
	c.AfterFunc(10*time.Millisecond, func() { fired = append(fired, "second") })

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, fired)
}

func TestNowTracksAdvance(t *testing.T) {
	c := New()
	start := c.Now()
	c.Advance(90 * time.Millisecond)
	assert.Equal(t, start.Add(90*time.Millisecond), c.Now())
}
