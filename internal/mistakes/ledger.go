package mistakes

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/store"
)

// Ledger holds mistakes in append order and mirrors every change to the
// key/value store.
type Ledger struct {
	mu    sync.Mutex
	kv    store.KV
	log   *logger.Logger
	items []Mistake
}

// Open loads the ledger from kv. An unreadable stored ledger is logged
// and replaced by an empty one on the next write.
func Open(ctx context.Context, kv store.KV, log *logger.Logger) (*Ledger, error) {
	l := &Ledger{kv: kv, log: log}

	var items []Mistake
	found, err := store.LoadJSON(ctx, kv, store.KeyMistakes, &items)
	switch {
	case err != nil && !found:
		return nil, fmt.Errorf("load mistakes: %w", err)
	case err != nil:
		log.Warn("discarding unreadable mistake ledger", "error", err)
		items = nil
	}
	l.items = items
	return l, nil
}

// Append adds m to the ledger. IDs must be unique.
func (l *Ledger) Append(ctx context.Context, m Mistake) error {
	if m.ID == "" {
		return fmt.Errorf("mistake has no id")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexLocked(m.ID) >= 0 {
		return fmt.Errorf("mistake %q already recorded", m.ID)
	}
	l.items = append(l.items, m)
	return l.persistLocked(ctx)
}

// Delete removes the mistake with id. Deleting an unknown id is a no-op.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(id)
	if i < 0 {
		return nil
	}
	l.items = slices.Delete(l.items, i, i+1)
	return l.persistLocked(ctx)
}

// List returns every mistake, most recent first.
func (l *Ledger) List() []Mistake {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := slices.Clone(l.items)
	slices.Reverse(out)
	return out
}

// Recent returns up to n mistakes, most recent first.
func (l *Ledger) Recent(n int) []Mistake {
	all := l.List()
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Get returns the mistake with id.
func (l *Ledger) Get(id string) (Mistake, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexLocked(id); i >= 0 {
		return l.items[i], true
	}
	return Mistake{}, false
}

// Len returns the number of recorded mistakes.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *Ledger) indexLocked(id string) int {
	return slices.IndexFunc(l.items, func(m Mistake) bool { return m.ID == id })
}

func (l *Ledger) persistLocked(ctx context.Context) error {
	items := l.items
	if items == nil {
		items = []Mistake{}
	}
	if err := store.SaveJSON(ctx, l.kv, store.KeyMistakes, items); err != nil {
		l.log.Error("failed to persist mistake ledger", "error", err)
		return fmt.Errorf("persist mistakes: %w", err)
	}
	return nil
}
