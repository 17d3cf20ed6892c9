package arena

import (
	"context"
	"sync"
)

// intentQueue runs exam intents in the order their keys were pressed.
// Tickets are taken on the update loop; each command waits for its turn
// before calling the machine.
type intentQueue struct {
	mu      sync.Mutex
	turn    *sync.Cond
	next    uint64
	serving uint64
}

func newIntentQueue() *intentQueue {
	q := &intentQueue{}
	q.turn = sync.NewCond(&q.mu)
	return q
}

// ticket reserves the next slot. It must be called from Update.
func (q *intentQueue) ticket() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	t := q.next
	q.next++
	return t
}

// run waits until every earlier ticket has finished, then runs intent.
func (q *intentQueue) run(ctx context.Context, t uint64, intent func(context.Context) error) error {
	q.mu.Lock()
	for q.serving != t {
		q.turn.Wait()
	}
	q.mu.Unlock()

	err := intent(ctx)

	q.mu.Lock()
	q.serving++
	q.turn.Broadcast()
	q.mu.Unlock()
	return err
}
