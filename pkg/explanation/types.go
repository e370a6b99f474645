package explanation

import (
	"strings"
	"time"
)

// Target identifies which rendered surface a directive applies to.
// The matcher itself is target-agnostic; renderers select their own subset.
type Target string

const (
	TargetPassage Target = "passage"
	TargetStem    Target = "stem"
	TargetChoices Target = "choices"
	TargetFigure  Target = "figure"
)

// Action names the visual treatment of a matched snippet.
type Action string

const (
	ActionHighlight Action = "highlight"
	ActionUnderline Action = "underline"
	ActionCircle    Action = "circle"
	ActionStrike    Action = "strike"
	ActionNote      Action = "note"
	ActionColor     Action = "color"
	ActionFont      Action = "font"
)

// Directive instructs a renderer to visually annotate a text snippet.
// Cue, Emphasis, FigureID and ChoiceID are free-form hints passed through
// to the renderer unchanged.
type Directive struct {
	Target   Target `json:"target" yaml:"target" mapstructure:"target"`
	Text     string `json:"text" yaml:"text" mapstructure:"text"`
	Action   Action `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
	Cue      string `json:"cue,omitempty" yaml:"cue,omitempty" mapstructure:"cue"`
	Emphasis string `json:"emphasis,omitempty" yaml:"emphasis,omitempty" mapstructure:"emphasis"`
	FigureID string `json:"figure_id,omitempty" yaml:"figure_id,omitempty" mapstructure:"figure_id"`
	ChoiceID string `json:"choice_id,omitempty" yaml:"choice_id,omitempty" mapstructure:"choice_id"`
}

// EffectiveAction returns the action with the default applied.
func (d Directive) EffectiveAction() Action {
	if d.Action == "" {
		return ActionHighlight
	}
	return d.Action
}

// Step is one timed unit of playback.
type Step struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Type       string      `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Narration  Narration   `json:"narration" yaml:"narration" mapstructure:"narration"`
	DurationMS *int        `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty" mapstructure:"duration_ms"`
	DelayMS    *int        `json:"delay_ms,omitempty" yaml:"delay_ms,omitempty" mapstructure:"delay_ms"`
	Animations []Directive `json:"animations,omitempty" yaml:"animations,omitempty" mapstructure:"animations"`
	BoardNotes []string    `json:"board_notes,omitempty" yaml:"board_notes,omitempty" mapstructure:"board_notes"`
}

const (
	defaultDurationMS = 3000
	minDurationMS     = 500
	defaultDelayMS    = 500
)

// Duration returns the intended on-screen time before auto-advance.
// Absent values default to 3s; given values are floored at 500ms.
func (s Step) Duration() time.Duration {
	ms := defaultDurationMS
	if s.DurationMS != nil {
		ms = *s.DurationMS
	}
	if ms < minDurationMS {
		ms = minDurationMS
	}
	return time.Duration(ms) * time.Millisecond
}

// Delay returns the extra pause appended after Duration before advancing.
// Absent values default to 500ms; given values are floored at zero.
func (s Step) Delay() time.Duration {
	ms := defaultDelayMS
	if s.DelayMS != nil {
		ms = *s.DelayMS
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Directives returns the step's animations with unusable entries removed.
// A directive whose snippet is empty after trimming cannot match anything
// and is discarded here rather than reported as an error.
func (s Step) Directives() []Directive {
	if len(s.Animations) == 0 {
		return nil
	}
	out := make([]Directive, 0, len(s.Animations))
	for _, d := range s.Animations {
		if strings.TrimSpace(d.Text) == "" {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Explanation is the whole walkthrough payload.
type Explanation struct {
	ProtocolVersion int    `json:"protocol_version,omitempty" yaml:"protocol_version,omitempty" mapstructure:"protocol_version"`
	Summary         string `json:"summary,omitempty" yaml:"summary,omitempty" mapstructure:"summary"`
	Language        string `json:"language,omitempty" yaml:"language,omitempty" mapstructure:"language"`
	Steps           []Step `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// Lang returns the requested narration language, defaulting to English.
func (e *Explanation) Lang() string {
	if e == nil || e.Language == "" {
		return LangEN
	}
	return e.Language
}
