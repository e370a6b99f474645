// Package memory provides an in-process explanation library, used as the
// default store and as a stand-in for Redis in tests and single-binary
// deployments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lumilearn/chalkboard/pkg/explanation"
)

// Library implements ports.Library on a map. Payloads are stored as JSON
// so callers can never mutate a stored explanation through a shared
// pointer.
type Library struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New creates an empty in-memory library.
func New() *Library {
	return &Library{docs: make(map[string][]byte)}
}

func (l *Library) Put(ctx context.Context, id string, e *explanation.Explanation) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal explanation: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.docs[id] = data
	return nil
}

func (l *Library) Get(ctx context.Context, id string) (*explanation.Explanation, error) {
	l.mu.RLock()
	data, ok := l.docs[id]
	l.mu.RUnlock()
	if !ok {
		return nil, explanation.ErrNotFound
	}
	var e explanation.Explanation
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal explanation: %w", err)
	}
	return &e, nil
}

func (l *Library) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.docs, id)
	return nil
}

func (l *Library) List(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.docs))
	for id := range l.docs {
		ids = append(ids, id)
	}
	return ids, nil
}
