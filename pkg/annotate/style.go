package annotate

import "github.com/lumilearn/chalkboard/pkg/explanation"

// Style is the presentation a matched segment should receive. It is a
// closed mapping from action to visual traits; renderers translate traits
// to their own medium (CSS classes, ANSI attributes, canvas strokes).
type Style struct {
	// Fill paints the segment background.
	Fill bool `json:"fill"`
	// Soft selects a muted fill tone (used by note).
	Soft      bool `json:"soft,omitempty"`
	Underline bool `json:"underline,omitempty"`
	// Outline draws a ring around the segment.
	Outline bool `json:"outline,omitempty"`
	Strike  bool `json:"strike,omitempty"`
	Italic  bool `json:"italic,omitempty"`
}

// StyleFor maps an action to its fixed presentation. Unknown actions and
// the empty action both render as the default highlight fill.
func StyleFor(a explanation.Action) Style {
	switch a {
	case explanation.ActionUnderline:
		return Style{Underline: true}
	case explanation.ActionCircle:
		return Style{Outline: true}
	case explanation.ActionStrike:
		return Style{Strike: true}
	case explanation.ActionNote:
		return Style{Fill: true, Soft: true}
	case explanation.ActionColor:
		// Caller supplies color through directive hints; no fill here.
		return Style{}
	case explanation.ActionFont:
		return Style{Italic: true}
	default:
		return Style{Fill: true}
	}
}
