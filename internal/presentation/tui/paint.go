package tui

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/lumilearn/chalkboard/pkg/annotate"
)

// PaintSegments renders matcher segments as one ANSI-styled string. Plain
// runs pass through; matched runs get the closest terminal equivalent of
// their visual style.
func PaintSegments(segs []annotate.Segment) string {
	p := termenv.ColorProfile()

	var b strings.Builder
	for _, seg := range segs {
		if !seg.Matched {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(paintOne(p, seg))
	}
	return b.String()
}

func paintOne(p termenv.Profile, seg annotate.Segment) string {
	style := annotate.StyleFor(seg.Action)
	s := termenv.String(seg.Text)

	switch {
	case style.Fill && style.Soft:
		s = s.Background(p.Color("#3b3b6d")).Foreground(p.Color("#e0e7ff"))
	case style.Fill:
		s = s.Background(p.Color("#facc15")).Foreground(p.Color("#1f2937"))
	}
	if style.Underline {
		s = s.Underline()
	}
	if style.Strike {
		s = s.CrossOut()
	}
	if style.Italic {
		s = s.Italic()
	}
	if style.Outline {
		// No ring in a terminal; reverse video is the nearest cue.
		s = s.Reverse()
	}
	return s.String()
}
