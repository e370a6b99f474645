package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumilearn/chalkboard/pkg/explanation"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

func TestLibraryContract(t *testing.T) {
	ports.RunLibraryContract(t, New())
}

func TestStoredPayloadsAreIsolated(t *testing.T) {
	lib := New()
	ctx := context.Background()

	e := &explanation.Explanation{
		Summary: "before",
		Steps:   []explanation.Step{{ID: "s1"}},
	}
	require.NoError(t, lib.Put(ctx, "doc", e))

	// Mutating the stored pointer must not leak into later reads.
	e.Summary = "after"
	e.Steps[0].ID = "mutated"

	got, err := lib.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "before", got.Summary)
	assert.Equal(t, "s1", got.Steps[0].ID)

	// Nor must mutating a read result affect the next read.
	got.Summary = "scribbled"
	again, err := lib.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "before", again.Summary)
}
