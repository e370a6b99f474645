package explanation

import "strings"

// SummaryStepID is the reserved identity of the synthetic trailing step
// appended when the payload carries a summary.
const SummaryStepID = "summary"

// Fixed timing of the synthetic summary step.
const (
	summaryDurationMS = 2800
	summaryDelayMS    = 600
)

// EffectiveSteps returns the step list fed to the sequencer: the payload's
// steps, plus one synthetic summary step iff the summary is non-empty. The
// synthetic step carries no directives. A nil receiver yields nil.
func (e *Explanation) EffectiveSteps() []Step {
	if e == nil {
		return nil
	}
	steps := make([]Step, 0, len(e.Steps)+1)
	steps = append(steps, e.Steps...)
	if strings.TrimSpace(e.Summary) != "" {
		dur := summaryDurationMS
		delay := summaryDelayMS
		steps = append(steps, Step{
			ID:         SummaryStepID,
			Type:       "summary",
			Narration:  NewNarration(e.Summary),
			DurationMS: &dur,
			DelayMS:    &delay,
		})
	}
	if len(steps) == 0 {
		return nil
	}
	return steps
}
