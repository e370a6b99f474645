package chalkboard

import (
	"io"
	"log/slog"

	"github.com/lumilearn/chalkboard/internal/clock"
	"github.com/lumilearn/chalkboard/internal/playback"
	"github.com/lumilearn/chalkboard/pkg/explanation"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

// Hooks are the observable side effects of a playback session.
type Hooks = playback.Hooks

// Snapshot is one observable frame of a playback session.
type Snapshot = playback.Snapshot

// StepEvent describes entering or leaving a step.
type StepEvent = playback.StepEvent

// Player is the high-level entry point for one playback session. It wraps
// the internal sequencer and provides a simplified API for consumers.
// Players are fully independent; nothing is shared between sessions.
type Player struct {
	seq *playback.Sequencer
}

// Option configures a Player.
type Option func(*settings)

type settings struct {
	clock  ports.Clock
	logger *slog.Logger
	hooks  Hooks
}

// WithClock injects a custom timer source, bypassing the wall clock.
func WithClock(c ports.Clock) Option {
	return func(s *settings) { s.clock = c }
}

// WithLogger sets a structured logger for the session.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithHooks registers observability callbacks.
func WithHooks(h Hooks) Option {
	return func(s *settings) { s.hooks = h }
}

// New creates a Player for the given explanation. A nil payload yields an
// empty session: zero steps, every control a no-op.
func New(e *explanation.Explanation, opts ...Option) *Player {
	s := settings{
		clock:  clock.New(),
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}

	p := &Player{seq: playback.New(s.clock, s.logger, s.hooks)}
	p.seq.Load(e)
	return p
}

// Load replaces the explanation, resetting the session to step 0, paused.
func (p *Player) Load(e *explanation.Explanation) {
	p.seq.Load(e)
}

// TogglePlay flips between Paused and Playing. No-op with zero steps.
func (p *Player) TogglePlay() {
	p.seq.TogglePlay()
}

// GoToStep selects step n and pauses. Out-of-range values are no-ops.
func (p *Player) GoToStep(n int) {
	p.seq.GoToStep(n)
}

// Next moves one step forward, pausing. No-op on the last step.
func (p *Player) Next() {
	p.seq.GoToStep(p.seq.Index() + 1)
}

// Prev moves one step back, pausing. No-op on step 0.
func (p *Player) Prev() {
	p.seq.GoToStep(p.seq.Index() - 1)
}

// Index returns the current step index.
func (p *Player) Index() int { return p.seq.Index() }

// StepCount returns the effective step count (including the synthetic
// summary step when present).
func (p *Player) StepCount() int { return p.seq.Count() }

// Playing reports whether auto-advance is active.
func (p *Player) Playing() bool { return p.seq.Playing() }

// Directives returns the active step's directive set; nil when no step is
// active.
func (p *Player) Directives() []explanation.Directive {
	return p.seq.Directives()
}

// Snapshot returns the current observable frame.
func (p *Player) Snapshot() Snapshot {
	return p.seq.Snapshot()
}

// Close tears the session down and releases its timers.
func (p *Player) Close() {
	p.seq.Close()
}
