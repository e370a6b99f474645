package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumilearn/chalkboard/pkg/explanation"
	"github.com/lumilearn/chalkboard/pkg/ports"
)

func newTestLibrary(t *testing.T, opts ...Option) *Library {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	lib := NewFromClient(client, opts...)
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestLibraryContract(t *testing.T) {
	ports.RunLibraryContract(t, newTestLibrary(t))
}

func TestTTLExpiresPayloads(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	lib := NewFromClient(client, WithTTL(time.Minute))
	defer lib.Close()

	ctx := context.Background()
	e := &explanation.Explanation{Steps: []explanation.Step{{ID: "s1"}}}
	require.NoError(t, lib.Put(ctx, "short-lived", e))

	_, err := lib.Get(ctx, "short-lived")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = lib.Get(ctx, "short-lived")
	assert.ErrorIs(t, err, explanation.ErrNotFound)

	// The index prunes the expired entry on the next listing.
	ids, err := lib.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "short-lived")
}

func TestCustomPrefixKeepsLibrariesApart(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	a := NewFromClient(client, WithPrefix("a:"))
	b := NewFromClient(client, WithPrefix("b:"))
	defer a.Close()

	ctx := context.Background()
	e := &explanation.Explanation{Summary: "only in a"}
	require.NoError(t, a.Put(ctx, "doc", e))

	_, err := b.Get(ctx, "doc")
	assert.ErrorIs(t, err, explanation.ErrNotFound)

	got, err := a.Get(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "only in a", got.Summary)
}
