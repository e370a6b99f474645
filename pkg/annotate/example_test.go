package annotate_test

import (
	"fmt"

	"github.com/lumilearn/chalkboard/pkg/annotate"
	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// ExampleSegments shows the directive matcher splitting a passage into
// plain and annotated runs.
func ExampleSegments() {
	directives := []explanation.Directive{
		{Target: explanation.TargetPassage, Text: "slope", Action: explanation.ActionUnderline},
	}

	for _, seg := range annotate.Segments("Find the Slope of the line.", directives) {
		if seg.Matched {
			fmt.Printf("[%s:%s]", seg.Action, seg.Text)
		} else {
			fmt.Print(seg.Text)
		}
	}

	// Output:
	// Find the [underline:Slope] of the line.
}
