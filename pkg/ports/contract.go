package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// RunLibraryContract verifies that a Library implementation honors the
// interface contract. Adapter test suites call this against their instance.
func RunLibraryContract(t *testing.T, lib Library) {
	ctx := context.Background()
	id := "contract-" + time.Now().Format("20060102150405")

	payload := &explanation.Explanation{
		ProtocolVersion: explanation.CurrentProtocolVersion,
		Summary:         "Recap",
		Language:        explanation.LangEN,
		Steps: []explanation.Step{
			{
				ID:        "s1",
				Narration: explanation.NewNarration("Read the first sentence."),
				Animations: []explanation.Directive{
					{Target: explanation.TargetPassage, Text: "first sentence"},
				},
			},
		},
	}

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, lib.Put(ctx, id, payload))

		got, err := lib.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, payload.Summary, got.Summary)
		require.Len(t, got.Steps, 1)
		assert.Equal(t, "s1", got.Steps[0].ID)
		assert.Equal(t, "Read the first sentence.", got.Steps[0].Narration.Resolve(explanation.LangEN))
	})

	t.Run("Get unknown", func(t *testing.T) {
		_, err := lib.Get(ctx, "missing-"+id)
		assert.ErrorIs(t, err, explanation.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, lib.Put(ctx, id, payload))
		require.NoError(t, lib.Delete(ctx, id))

		_, err := lib.Get(ctx, id)
		assert.ErrorIs(t, err, explanation.ErrNotFound)

		// Deleting again must stay quiet.
		assert.NoError(t, lib.Delete(ctx, id))
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, lib.Put(ctx, id1, payload))
		require.NoError(t, lib.Put(ctx, id2, payload))
		defer func() {
			_ = lib.Delete(ctx, id1)
			_ = lib.Delete(ctx, id2)
		}()

		ids, err := lib.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
