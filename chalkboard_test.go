package chalkboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumilearn/chalkboard/internal/clock/clocktest"
	"github.com/lumilearn/chalkboard/pkg/explanation"
)

func intp(v int) *int { return &v }

func lessonPayload() *explanation.Explanation {
	return &explanation.Explanation{
		Summary: "Recap",
		Steps: []explanation.Step{
			{
				ID:         "s1",
				Title:      "Find the slope",
				Narration:  explanation.NewNarration("Look at the slope."),
				DurationMS: intp(1000),
				DelayMS:    intp(200),
				Animations: []explanation.Directive{
					{Target: explanation.TargetPassage, Text: "slope"},
				},
			},
		},
	}
}

func TestPlayerWalkthrough(t *testing.T) {
	clk := clocktest.New()
	player := New(lessonPayload(), WithClock(clk))
	defer player.Close()

	// One authored step plus the synthetic summary.
	require.Equal(t, 2, player.StepCount())
	assert.Equal(t, 0, player.Index())
	assert.False(t, player.Playing())

	snap := player.Snapshot()
	assert.Equal(t, "s1", snap.StepID)
	assert.Equal(t, "Look at the slope.", snap.Narration)
	require.Len(t, player.Directives(), 1)

	// Jump to the summary: paused, no directives, full recap text.
	player.GoToStep(1)
	snap = player.Snapshot()
	assert.Equal(t, "summary", snap.StepID)
	assert.Equal(t, "Recap", snap.Narration)
	assert.Empty(t, snap.Directives)
	assert.False(t, player.Playing())

	// Jumping out of range changes nothing.
	player.GoToStep(5)
	assert.Equal(t, 1, player.Index())
}

func TestPlayerAutoAdvanceToSummary(t *testing.T) {
	clk := clocktest.New()
	player := New(lessonPayload(), WithClock(clk))
	defer player.Close()

	player.TogglePlay()
	require.True(t, player.Playing())

	clk.Advance(1200 * time.Millisecond)
	assert.Equal(t, 1, player.Index())
	assert.Equal(t, "summary", player.Snapshot().StepID)

	// The summary is the last step; after its time runs out, pause.
	clk.Advance(3400 * time.Millisecond)
	assert.False(t, player.Playing())
	assert.Equal(t, 1, player.Index())
}

func TestPlayerNextPrev(t *testing.T) {
	player := New(lessonPayload())
	defer player.Close()

	player.Next()
	assert.Equal(t, 1, player.Index())
	player.Next() // already on the last step
	assert.Equal(t, 1, player.Index())

	player.Prev()
	assert.Equal(t, 0, player.Index())
	player.Prev() // already on the first step
	assert.Equal(t, 0, player.Index())
}

func TestPlayerHooks(t *testing.T) {
	clk := clocktest.New()
	var entered []string
	player := New(lessonPayload(),
		WithClock(clk),
		WithHooks(Hooks{
			OnStepEnter: func(e StepEvent) { entered = append(entered, e.Step.ID) },
		}),
	)
	defer player.Close()

	player.Next()
	player.Prev()
	assert.Equal(t, []string{"s1", "summary", "s1"}, entered)
}

func TestPlayerWithNilPayload(t *testing.T) {
	player := New(nil)
	defer player.Close()

	assert.Zero(t, player.StepCount())
	player.TogglePlay()
	assert.False(t, player.Playing())
	assert.Nil(t, player.Directives())
}

func TestPlayerLoadReplacesPayload(t *testing.T) {
	clk := clocktest.New()
	player := New(lessonPayload(), WithClock(clk))
	defer player.Close()

	player.Next()
	require.Equal(t, 1, player.Index())

	player.Load(&explanation.Explanation{
		Steps: []explanation.Step{{ID: "other"}},
	})
	assert.Equal(t, 0, player.Index())
	assert.Equal(t, 1, player.StepCount())
	assert.False(t, player.Playing())
	assert.Equal(t, "other", player.Snapshot().StepID)
}
