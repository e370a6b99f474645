package annotate

import (
	"strings"
	"unicode"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// Segment is one run of the source text. Matched segments carry the
// directive that claimed them so renderers can read its hints.
type Segment struct {
	Text      string                 `json:"text"`
	Matched   bool                   `json:"matched"`
	Action    explanation.Action     `json:"action,omitempty"`
	Directive *explanation.Directive `json:"directive,omitempty"`
}

// Segments splits text into plain and matched runs by applying directives
// in order. Matching is case-insensitive against the raw text (prior to any
// Markdown/LaTeX rendering) and operates only on the unconsumed suffix.
func Segments(text string, directives []explanation.Directive) []Segment {
	if text == "" {
		return nil
	}

	var segs []Segment
	cursor := 0 // byte offset of the unconsumed suffix
	for i := range directives {
		needle := strings.TrimSpace(directives[i].Text)
		if needle == "" {
			continue
		}
		start, end := indexFold(text[cursor:], needle)
		if start < 0 {
			continue
		}
		if start > 0 {
			segs = append(segs, Segment{Text: text[cursor : cursor+start]})
		}
		d := directives[i]
		segs = append(segs, Segment{
			Text:      text[cursor+start : cursor+end],
			Matched:   true,
			Action:    d.EffectiveAction(),
			Directive: &d,
		})
		cursor += end
	}
	if cursor < len(text) {
		segs = append(segs, Segment{Text: text[cursor:]})
	}
	return segs
}

// indexFold locates the first case-insensitive occurrence of substr in s and
// returns its start and end byte offsets, or (-1, -1). Folding is done per
// rune so byte offsets always refer to the original string.
func indexFold(s, substr string) (int, int) {
	sub := []rune(substr)
	if len(sub) == 0 {
		return -1, -1
	}
	for i := range sub {
		sub[i] = unicode.ToLower(sub[i])
	}

	runes := []rune(s)
	// offs[i] is the byte offset where rune i starts.
	offs := make([]int, 0, len(runes)+1)
	for i := range s {
		offs = append(offs, i)
	}
	offs = append(offs, len(s))

	for i := 0; i+len(sub) <= len(runes); i++ {
		match := true
		for k := range sub {
			if unicode.ToLower(runes[i+k]) != sub[k] {
				match = false
				break
			}
		}
		if match {
			return offs[i], offs[i+len(sub)]
		}
	}
	return -1, -1
}
