package explanation

import (
	"fmt"
	"strings"
)

// CurrentProtocolVersion is the newest payload revision this package knows.
const CurrentProtocolVersion = 1

var knownTargets = map[Target]bool{
	TargetPassage: true,
	TargetStem:    true,
	TargetChoices: true,
	TargetFigure:  true,
}

var knownActions = map[Action]bool{
	ActionHighlight: true,
	ActionUnderline: true,
	ActionCircle:    true,
	ActionStrike:    true,
	ActionNote:      true,
	ActionColor:     true,
	ActionFont:      true,
}

// ValidationIssue describes one problem found in a payload.
type ValidationIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i ValidationIssue) String() string {
	return i.Path + ": " + i.Message
}

// Lint returns every issue found in the payload. Unknown actions are
// reported even though playback degrades them to the default highlight;
// the linter is for authors, the player stays lenient.
func Lint(e *Explanation) []ValidationIssue {
	var issues []ValidationIssue
	report := func(path, format string, args ...any) {
		issues = append(issues, ValidationIssue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if e == nil {
		report("$", "payload is nil")
		return issues
	}
	if e.ProtocolVersion != 0 && e.ProtocolVersion != CurrentProtocolVersion {
		report("$.protocol_version", "unsupported version %d (want %d)", e.ProtocolVersion, CurrentProtocolVersion)
	}

	seen := make(map[string]int)
	for i, s := range e.Steps {
		path := fmt.Sprintf("$.steps[%d]", i)
		if s.ID != "" {
			if s.ID == SummaryStepID {
				report(path+".id", "%q is reserved for the synthetic summary step", SummaryStepID)
			}
			if prev, dup := seen[s.ID]; dup {
				report(path+".id", "duplicate id %q (first used by step %d)", s.ID, prev)
			} else {
				seen[s.ID] = i
			}
		}
		if s.DurationMS != nil && *s.DurationMS < 0 {
			report(path+".duration_ms", "must not be negative")
		}
		if s.DelayMS != nil && *s.DelayMS < 0 {
			report(path+".delay_ms", "must not be negative")
		}
		for j, d := range s.Animations {
			dpath := fmt.Sprintf("%s.animations[%d]", path, j)
			if strings.TrimSpace(d.Text) == "" {
				report(dpath+".text", "empty snippet, directive can never match")
			}
			if d.Target != "" && !knownTargets[d.Target] {
				report(dpath+".target", "unknown target %q", d.Target)
			}
			if d.Action != "" && !knownActions[d.Action] {
				report(dpath+".action", "unknown action %q (will render as highlight)", d.Action)
			}
		}
	}
	return issues
}

// Validate returns an error summarizing all lint issues, or nil.
func Validate(e *Explanation) error {
	issues := Lint(e)
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, iss := range issues {
		lines[i] = iss.String()
	}
	return fmt.Errorf("invalid explanation:\n  %s", strings.Join(lines, "\n  "))
}
