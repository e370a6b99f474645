package playback

import "github.com/lumilearn/chalkboard/pkg/explanation"

// StepEvent describes entering or leaving a step.
type StepEvent struct {
	Index int              `json:"index"`
	Count int              `json:"count"`
	Step  explanation.Step `json:"step"`

	// Directives is the active directive set the renderer should apply.
	// On leave events it is always empty so stale highlights never
	// survive a step transition.
	Directives []explanation.Directive `json:"directives,omitempty"`
}

// Hooks are the sequencer's observable side effects, fired synchronously
// after each state transition (never while internal locks are held).
type Hooks struct {
	OnStepEnter  func(StepEvent)
	OnStepLeave  func(StepEvent)
	OnPlayChange func(playing bool)
	// OnReveal fires on every typewriter tick with a fresh snapshot.
	OnReveal func(Snapshot)
}

// Snapshot is one observable frame of a playback session.
type Snapshot struct {
	Index   int    `json:"index"`
	Count   int    `json:"count"`
	Playing bool   `json:"playing"`
	StepID  string `json:"step_id,omitempty"`
	Title   string `json:"title,omitempty"`
	Type    string `json:"type,omitempty"`

	// Narration follows the display rule: the in-progress reveal buffer
	// while playing, the full resolved narration while paused.
	Narration string `json:"narration"`
	// FullNarration is the complete resolved narration of the active step.
	FullNarration string `json:"full_narration"`

	BoardNotes []string                `json:"board_notes,omitempty"`
	Directives []explanation.Directive `json:"directives,omitempty"`
}
