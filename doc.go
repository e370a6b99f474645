/*
Package chalkboard is a playback engine for animated, step-by-step
explanations of exercise solutions: narration with a typewriter reveal,
timed auto-advance, manual scrubbing, and text-range annotation directives
matched against passage text.

It implements a timer-driven state machine with controlled side effects,
separating the explanation payload (content) from the session state
(playback) and the rendering (host). This hexagonal layout lets the engine
be embedded in any surface: a terminal, an HTTP service, or agent tooling.

# Concept

An Explanation arrives as structured data: ordered steps, each with
narration (plain or language-keyed), timing, and annotation directives
targeting the rendered passage, stem, choices or figure. The Player owns
the current step index and the Paused/Playing state; two independent
clocks hang off it. The auto-advance timer moves to the next step after
the step's duration plus delay while playing. The typewriter clock reveals
narration one character at a time regardless of play state. The directive
matcher is a pure function the host calls per text block.

# Usage

	package main

	import (
		"fmt"

		"github.com/lumilearn/chalkboard"
		"github.com/lumilearn/chalkboard/pkg/explanation"
	)

	func main() {
		expl, err := explanation.DecodeFile("slope.yaml")
		if err != nil {
			panic(err)
		}

		player := chalkboard.New(expl, chalkboard.WithHooks(chalkboard.Hooks{
			OnStepEnter: func(e chalkboard.StepEvent) {
				fmt.Printf("step %d of %d\n", e.Index+1, e.Count)
			},
		}))
		defer player.Close()

		player.TogglePlay()
	}

Hosts that render text call annotate.Segments with each surface's own
directive subset and paint the returned runs.
*/
package chalkboard
