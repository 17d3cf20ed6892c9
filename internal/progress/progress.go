// Package progress tracks the set of topics the learner has answered
// correctly at least once.
package progress

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/store"
)

// Tracker is the completed-topics set, kept in insertion order.
type Tracker struct {
	mu     sync.Mutex
	kv     store.KV
	log    *logger.Logger
	topics []string
}

// Open loads the completed-topics set from kv. An unreadable stored set
// is logged and treated as empty.
func Open(ctx context.Context, kv store.KV, log *logger.Logger) (*Tracker, error) {
	t := &Tracker{kv: kv, log: log}

	found, err := store.LoadJSON(ctx, kv, store.KeyCompletedTopics, &t.topics)
	switch {
	case err != nil && !found:
		return nil, fmt.Errorf("load completed topics: %w", err)
	case err != nil:
		log.Warn("discarding unreadable completed topics", "error", err)
		t.topics = nil
	}
	return t, nil
}

// Complete marks topic as done. Completing a done topic is a no-op.
func (t *Tracker) Complete(ctx context.Context, topic string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.topics, topic) {
		return nil
	}
	t.topics = append(t.topics, topic)
	return t.persistLocked(ctx)
}

// Toggle flips topic and reports whether it is now complete.
func (t *Tracker) Toggle(ctx context.Context, topic string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	done := true
	if i := slices.Index(t.topics, topic); i >= 0 {
		t.topics = slices.Delete(t.topics, i, i+1)
		done = false
	} else {
		t.topics = append(t.topics, topic)
	}
	return done, t.persistLocked(ctx)
}

// Has reports whether topic is complete.
func (t *Tracker) Has(topic string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.topics, topic)
}

// List returns the completed topics in the order they were completed.
func (t *Tracker) List() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.topics)
}

// Len returns the number of completed topics.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.topics)
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	topics := t.topics
	if topics == nil {
		topics = []string{}
	}
	if err := store.SaveJSON(ctx, t.kv, store.KeyCompletedTopics, topics); err != nil {
		t.log.Error("failed to persist completed topics", "error", err)
		return fmt.Errorf("persist completed topics: %w", err)
	}
	return nil
}
