// Package playback implements the step sequencer: a paused/playing state
// machine over an explanation's effective step list, with an auto-advance
// timer and a typewriter narration reveal running as independent clocks.
package playback

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/lumilearn/chalkboard/pkg/explanation"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

// revealTick is the typewriter cadence: one rune per tick.
const revealTick = 25 * time.Millisecond

// Sequencer drives one playback session. All methods are safe for
// concurrent use; hooks run outside the internal lock.
type Sequencer struct {
	clock  ports.Clock
	logger *slog.Logger
	hooks  Hooks

	mu      sync.Mutex
	steps   []explanation.Step
	lang    string
	idx     int
	playing bool
	closed  bool

	// Auto-advance timer, keyed by (step index, play state). Any
	// transition of that tuple bumps the generation, orphaning timers
	// that already fired but did not run yet.
	advanceGen   uint64
	advanceTimer ports.Timer

	// Typewriter clock, keyed by (step index, resolved narration).
	revealGen   uint64
	revealTimer ports.Timer
	narration   []rune
	revealed    int
}

// New creates a sequencer with no steps loaded.
func New(clk ports.Clock, logger *slog.Logger, hooks Hooks) *Sequencer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sequencer{clock: clk, logger: logger, hooks: hooks}
}

// Load replaces the explanation, resetting the session unconditionally:
// index 0, paused, reveal restarted from empty. A nil payload empties the
// sequencer.
func (s *Sequencer) Load(e *explanation.Explanation) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var calls []func()

	wasPlaying := s.playing
	if len(s.steps) > 0 {
		calls = append(calls, s.leaveCallLocked())
	}

	s.cancelAdvanceLocked()
	s.steps = e.EffectiveSteps()
	s.lang = e.Lang()
	s.idx = 0
	s.playing = false
	s.resetRevealLocked()

	if wasPlaying {
		calls = append(calls, s.playChangeCallLocked())
	}
	if len(s.steps) > 0 {
		calls = append(calls, s.enterCallLocked())
	}
	s.logger.Debug("explanation loaded", "steps", len(s.steps), "lang", s.lang)
	s.mu.Unlock()
	run(calls)
}

// GoToStep moves to step n and forces Paused. Out-of-range values are
// no-ops. This is the only backward path; auto-play never moves backward.
func (s *Sequencer) GoToStep(n int) {
	s.mu.Lock()
	if s.closed || n < 0 || n >= len(s.steps) {
		s.mu.Unlock()
		return
	}
	var calls []func()

	wasPlaying := s.playing
	s.playing = false
	s.cancelAdvanceLocked()

	if n != s.idx {
		calls = append(calls, s.leaveCallLocked())
		s.idx = n
		s.resetRevealLocked()
		calls = append(calls, s.enterCallLocked())
		s.logger.Debug("step selected", "index", n)
	}
	if wasPlaying {
		calls = append(calls, s.playChangeCallLocked())
	}
	s.mu.Unlock()
	run(calls)
}

// TogglePlay flips Paused and Playing. With zero steps it is a no-op.
func (s *Sequencer) TogglePlay() {
	s.mu.Lock()
	if s.closed || len(s.steps) == 0 {
		s.mu.Unlock()
		return
	}
	s.playing = !s.playing
	if s.playing {
		s.scheduleAdvanceLocked()
	} else {
		s.cancelAdvanceLocked()
	}
	call := s.playChangeCallLocked()
	s.logger.Debug("play toggled", "playing", s.playing)
	s.mu.Unlock()
	run([]func(){call})
}

// Close tears the session down, releasing every timer.
func (s *Sequencer) Close() {
	s.mu.Lock()
	s.closed = true
	s.cancelAdvanceLocked()
	s.cancelRevealLocked()
	s.mu.Unlock()
}

// Index returns the current step index.
func (s *Sequencer) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Count returns the effective step count.
func (s *Sequencer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Playing reports whether auto-advance is active.
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Directives returns the active step's directive set, or nil when no step
// is active.
func (s *Sequencer) Directives() []explanation.Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directivesLocked()
}

// Snapshot returns the current observable frame.
func (s *Sequencer) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// --- internals (all *Locked methods require s.mu) ---

func (s *Sequencer) activeStepLocked() (explanation.Step, bool) {
	if s.idx < 0 || s.idx >= len(s.steps) {
		return explanation.Step{}, false
	}
	return s.steps[s.idx], true
}

func (s *Sequencer) directivesLocked() []explanation.Directive {
	step, ok := s.activeStepLocked()
	if !ok {
		return nil
	}
	return step.Directives()
}

func (s *Sequencer) snapshotLocked() Snapshot {
	snap := Snapshot{
		Index:   s.idx,
		Count:   len(s.steps),
		Playing: s.playing,
	}
	step, ok := s.activeStepLocked()
	if !ok {
		return snap
	}
	snap.StepID = step.ID
	snap.Title = step.Title
	snap.Type = step.Type
	snap.BoardNotes = step.BoardNotes
	snap.Directives = step.Directives()
	snap.FullNarration = string(s.narration)
	if s.playing {
		snap.Narration = string(s.narration[:s.revealed])
	} else {
		snap.Narration = snap.FullNarration
	}
	return snap
}

// scheduleAdvanceLocked arms the auto-advance timer for the current step.
// The previous timer is released first; its generation becomes stale.
func (s *Sequencer) scheduleAdvanceLocked() {
	s.cancelAdvanceLocked()
	step, ok := s.activeStepLocked()
	if !ok || !s.playing {
		return
	}
	gen := s.advanceGen
	wait := step.Duration() + step.Delay()
	s.advanceTimer = s.clock.AfterFunc(wait, func() { s.advance(gen) })
}

func (s *Sequencer) cancelAdvanceLocked() {
	s.advanceGen++
	if s.advanceTimer != nil {
		s.advanceTimer.Stop()
		s.advanceTimer = nil
	}
}

// advance is the auto-advance timer callback.
func (s *Sequencer) advance(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.advanceGen || !s.playing {
		s.mu.Unlock()
		return
	}
	var calls []func()

	if s.idx >= len(s.steps)-1 {
		// Last step: stop, never loop or wrap.
		s.playing = false
		s.cancelAdvanceLocked()
		calls = append(calls, s.playChangeCallLocked())
		s.logger.Debug("playback finished", "index", s.idx)
	} else {
		calls = append(calls, s.leaveCallLocked())
		s.idx++
		s.resetRevealLocked()
		s.scheduleAdvanceLocked()
		calls = append(calls, s.enterCallLocked())
		s.logger.Debug("auto-advance", "index", s.idx)
	}
	s.mu.Unlock()
	run(calls)
}

// resetRevealLocked restarts the typewriter for the active step: buffer to
// empty, then one rune per tick until the resolved narration is complete.
// Runs regardless of play state.
func (s *Sequencer) resetRevealLocked() {
	s.cancelRevealLocked()
	s.revealed = 0
	s.narration = nil
	step, ok := s.activeStepLocked()
	if !ok {
		return
	}
	s.narration = []rune(step.Narration.Resolve(s.lang))
	if len(s.narration) == 0 {
		return
	}
	gen := s.revealGen
	s.revealTimer = s.clock.AfterFunc(revealTick, func() { s.reveal(gen) })
}

func (s *Sequencer) cancelRevealLocked() {
	s.revealGen++
	if s.revealTimer != nil {
		s.revealTimer.Stop()
		s.revealTimer = nil
	}
}

// reveal is the typewriter tick callback.
func (s *Sequencer) reveal(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.revealGen {
		s.mu.Unlock()
		return
	}
	if s.revealed < len(s.narration) {
		s.revealed++
	}
	if s.revealed < len(s.narration) {
		s.revealTimer = s.clock.AfterFunc(revealTick, func() { s.reveal(gen) })
	} else {
		s.revealTimer = nil
	}
	snap := s.snapshotLocked()
	onReveal := s.hooks.OnReveal
	s.mu.Unlock()

	if onReveal != nil {
		onReveal(snap)
	}
}

func (s *Sequencer) enterCallLocked() func() {
	if s.hooks.OnStepEnter == nil {
		return nil
	}
	evt := StepEvent{
		Index:      s.idx,
		Count:      len(s.steps),
		Step:       s.steps[s.idx],
		Directives: s.directivesLocked(),
	}
	fn := s.hooks.OnStepEnter
	return func() { fn(evt) }
}

// leaveCallLocked builds the leave notification for the current step with
// an intentionally empty directive set.
func (s *Sequencer) leaveCallLocked() func() {
	if s.hooks.OnStepLeave == nil {
		return nil
	}
	step, ok := s.activeStepLocked()
	if !ok {
		return nil
	}
	evt := StepEvent{Index: s.idx, Count: len(s.steps), Step: step}
	fn := s.hooks.OnStepLeave
	return func() { fn(evt) }
}

func (s *Sequencer) playChangeCallLocked() func() {
	if s.hooks.OnPlayChange == nil {
		return nil
	}
	playing := s.playing
	fn := s.hooks.OnPlayChange
	return func() { fn(playing) }
}

func run(calls []func()) {
	for _, c := range calls {
		if c != nil {
			c()
		}
	}
}
