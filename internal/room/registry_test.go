// ABOUTME: Tests for the subscription registry
// ABOUTME: Covers attach/replace, release, broadcast and dead-entry sweeps

package room

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *registry[int] {
	t.Helper()
	return newRegistry[int]("test", slog.Default())
}

func TestRegistry_AttachAndGet(t *testing.T) {
	r := newTestRegistry(t)

	sub := r.attach(1)
	got, ok := r.get(1)
	require.True(t, ok)
	assert.Same(t, sub, got)

	_, ok = r.get(2)
	assert.False(t, ok)
}

func TestRegistry_AttachReplacesPrior(t *testing.T) {
	r := newTestRegistry(t)

	first := r.attach(1)
	second := r.attach(1)

	select {
	case <-first.stop:
	default:
		t.Fatal("replaced subscription was not canceled")
	}

	got, ok := r.get(1)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRegistry_DetachCancels(t *testing.T) {
	r := newTestRegistry(t)

	sub := r.attach(1)
	r.detach(1)

	select {
	case <-sub.stop:
	default:
		t.Fatal("detached subscription was not canceled")
	}
	_, ok := r.get(1)
	assert.False(t, ok)
}

func TestRegistry_ReleaseOnlyOwnSlot(t *testing.T) {
	r := newTestRegistry(t)

	old := r.attach(1)
	replacement := r.attach(1)

	// The replaced stream exits and releases; the replacement must survive.
	r.release(1, old)
	got, ok := r.get(1)
	require.True(t, ok)
	assert.Same(t, replacement, got)

	r.release(1, replacement)
	_, ok = r.get(1)
	assert.False(t, ok)
}

func TestRegistry_GetSkipsFinishedSub(t *testing.T) {
	r := newTestRegistry(t)

	sub := r.attach(1)
	sub.finish()

	_, ok := r.get(1)
	assert.False(t, ok)
}

func TestSubscription_Send(t *testing.T) {
	sub := newSubscription[int]()

	assert.True(t, sub.send(7))
	assert.Equal(t, 7, <-sub.ch)

	sub.finish()
	assert.False(t, sub.send(8))
}

func TestSubscription_SendBlocksUntilConsumed(t *testing.T) {
	sub := newSubscription[int]()

	// Fill the buffer.
	for i := 0; i < notifyBuffer; i++ {
		require.True(t, sub.send(i))
	}

	done := make(chan bool, 1)
	go func() { done <- sub.send(99) }()

	select {
	case <-done:
		t.Fatal("send returned before the consumer drained")
	case <-time.After(20 * time.Millisecond):
	}

	<-sub.ch
	assert.True(t, <-done)
}

func TestRegistry_Broadcast(t *testing.T) {
	r := newTestRegistry(t)

	a := r.attach(1)
	b := r.attach(2)

	assert.True(t, r.broadcast(5))
	assert.Equal(t, 5, <-a.ch)
	assert.Equal(t, 5, <-b.ch)
}

func TestRegistry_BroadcastSurvivesDeadSub(t *testing.T) {
	r := newTestRegistry(t)

	dead := r.attach(1)
	live := r.attach(2)
	dead.finish()

	assert.False(t, r.broadcast(5), "fan-out must report the dead subscriber")
	assert.Equal(t, 5, <-live.ch)
}

func TestRegistry_Actualize(t *testing.T) {
	r := newTestRegistry(t)

	dead := r.attach(1)
	r.attach(2)
	dead.finish()

	assert.Equal(t, 1, r.actualize())
	assert.Equal(t, 0, r.actualize())

	_, ok := r.get(2)
	assert.True(t, ok)
}

func TestRegistry_SnapshotOf(t *testing.T) {
	r := newTestRegistry(t)

	a := r.attach(1)
	r.attach(2)
	c := r.attach(3)

	subs := r.snapshotOf([]uint64{1, 3, 99})
	require.Len(t, subs, 2)
	assert.Contains(t, subs, a)
	assert.Contains(t, subs, c)
}
