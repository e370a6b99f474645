// Package clock provides the production ports.Clock backed by package time.
package clock

import (
	"time"

	"github.com/lumilearn/chalkboard/pkg/ports"
)

// Real is the wall clock.
type Real struct{}

// New returns the wall clock.
func New() Real { return Real{} }

func (Real) AfterFunc(d time.Duration, f func()) ports.Timer {
	return realTimer{t: time.AfterFunc(d, f)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool { return rt.t.Stop() }
