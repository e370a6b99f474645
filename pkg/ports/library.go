package ports

import (
	"context"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// Library stores explanation payloads by id. It holds content only;
// playback state is never persisted.
type Library interface {
	// Put stores or replaces the payload under id.
	Put(ctx context.Context, id string, e *explanation.Explanation) error

	// Get retrieves a payload. Returns explanation.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*explanation.Explanation, error)

	// Delete removes a payload. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored ids.
	List(ctx context.Context) ([]string, error)
}
