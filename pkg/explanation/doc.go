/*
Package explanation defines the wire payload for an animated walkthrough of a
question's solution: an ordered list of timed steps, each carrying narration
text (plain or keyed by language) and visual annotation directives aimed at
the rendered passage, stem, choices or figure.

The payload is an immutable input for one playback session. Decoding accepts
JSON, YAML or a generic map (see FromMap); normalization into the effective
step list, including the synthetic summary step, happens in EffectiveSteps.
*/
package explanation
