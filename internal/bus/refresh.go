// Package bus is the in-process refresh registry that decouples "data
// changed" producers (entity services, socket pushes, poll cycles) from
// consumers (resolved views, CLI watchers). Publishes carry no payload:
// consumers re-read from the cache instead of trusting a delta.
package bus

import "sync"

// Topic keys subscriptions. Conventionally one topic per collection.
type Topic string

type subscription struct {
	owner string
	fn    func()
}

// RefreshBus fans a Publish out to every callback registered on the topic, in
// registration order. Subscribers register under an owner key, so
// re-registering the same owner replaces the callback in place (idempotent)
// and unregistering an unknown owner is a no-op.
//
// Publishers live on different goroutines (poller, socket, CLI), so the
// registry is mutex-guarded. Callbacks run synchronously in the
// publisher's goroutine, outside the lock, so they may themselves register or
// unregister. A callback publishing its own topic will loop; there is no
// cycle detection.
type RefreshBus struct {
	mu     sync.Mutex
	topics map[Topic][]subscription
}

func New() *RefreshBus {
	return &RefreshBus{topics: make(map[Topic][]subscription)}
}

// Register subscribes fn under owner on topic. Re-registering an existing
// owner swaps the callback but keeps its original position.
func (b *RefreshBus) Register(topic Topic, owner string, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[topic]
	for i, s := range subs {
		if s.owner == owner {
			subs[i].fn = fn
			return
		}
	}
	b.topics[topic] = append(subs, subscription{owner: owner, fn: fn})
}

// Unregister removes owner's subscription from topic, if any.
func (b *RefreshBus) Unregister(topic Topic, owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.topics[topic]
	for i, s := range subs {
		if s.owner == owner {
			b.topics[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every callback currently registered on topic, exactly once
// each, in registration order.
func (b *RefreshBus) Publish(topic Topic) {
	b.mu.Lock()
	subs := make([]subscription, len(b.topics[topic]))
	copy(subs, b.topics[topic])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
