package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_FansOutInRegistrationOrder(t *testing.T) {
	b := New()
	var calls []string
	b.Register("transactions", "a", func() { calls = append(calls, "a") })
	b.Register("transactions", "b", func() { calls = append(calls, "b") })
	b.Register("transactions", "c", func() { calls = append(calls, "c") })

	b.Publish("transactions")
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	b.Publish("transactions")
	assert.Len(t, calls, 6, "every publish invokes each callback exactly once")
}

func TestPublish_TopicsAreIsolated(t *testing.T) {
	b := New()
	accounts := 0
	categories := 0
	b.Register("accounts", "x", func() { accounts++ })
	b.Register("categories", "x", func() { categories++ })

	b.Publish("accounts")
	assert.Equal(t, 1, accounts)
	assert.Equal(t, 0, categories)
}

func TestRegister_SameOwnerReplacesInPlace(t *testing.T) {
	b := New()
	var calls []string
	b.Register("accounts", "first", func() { calls = append(calls, "first-old") })
	b.Register("accounts", "second", func() { calls = append(calls, "second") })
	// re-register: new fn, original position
	b.Register("accounts", "first", func() { calls = append(calls, "first-new") })

	b.Publish("accounts")
	assert.Equal(t, []string{"first-new", "second"}, calls)
}

func TestUnregister(t *testing.T) {
	b := New()
	n := 0
	b.Register("savings", "gone", func() { n++ })
	b.Unregister("savings", "gone")
	b.Publish("savings")
	assert.Equal(t, 0, n)

	// unknown owner and unknown topic are both no-ops
	b.Unregister("savings", "never-there")
	b.Unregister("no-such-topic", "gone")
}

func TestPublish_EmptyTopicIsNoOp(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() { b.Publish("nothing-registered") })
}
