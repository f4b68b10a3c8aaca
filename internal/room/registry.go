// ABOUTME: Per-kind subscription registry mapping user ids to push channels
// ABOUTME: One live subscription per (kind, user); liveness via done channel

package room

import (
	"log/slog"
	"sync"
)

// notifyBuffer is the capacity of every subscription channel. Small on
// purpose: a slow stream backpressures its own fan-out instead of hoarding
// events, and a reconnect replays current state anyway.
const notifyBuffer = 4

// subscription is the outbound side of one in-flight streaming call.
//
// Two signals bracket its life: stop is closed by the registry when the
// subscription is replaced or detached and tells the owning stream to quit;
// done is closed by the owning stream on exit and tells senders and sweeps
// the consumer is gone. Channels give the sender no closed-ness signal of
// their own, hence the explicit done.
type subscription[T any] struct {
	ch   chan T
	stop chan struct{}
	done chan struct{}

	stopOnce sync.Once
	doneOnce sync.Once
}

func newSubscription[T any]() *subscription[T] {
	return &subscription[T]{
		ch:   make(chan T, notifyBuffer),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// send delivers v to the consumer, suspending on backpressure. Reports
// false once the consumer has gone.
func (s *subscription[T]) send(v T) bool {
	select {
	case <-s.done:
		return false
	case s.ch <- v:
		return true
	}
}

// cancel asks the owning stream to quit.
func (s *subscription[T]) cancel() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// finish marks the consumer gone. Called exactly once by the owning stream
// on exit, before the registry slot is released.
func (s *subscription[T]) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

func (s *subscription[T]) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// registry tracks the live subscriptions of one notification kind.
// Fan-out snapshots the channel set under the read lock and sends with no
// lock held; attach, detach and sweeps take the write lock.
type registry[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription[T]
	logger *slog.Logger
}

func newRegistry[T any](kind string, logger *slog.Logger) *registry[T] {
	return &registry[T]{
		subs:   make(map[uint64]*subscription[T]),
		logger: logger.With("kind", kind),
	}
}

// attach inserts a fresh subscription for userID, replacing any prior one;
// the replaced stream observes cancellation. Entries whose stream has
// already gone are swept first.
func (r *registry[T]) attach(userID uint64) *subscription[T] {
	sub := newSubscription[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	if prior, ok := r.subs[userID]; ok {
		prior.cancel()
		r.logger.Debug("replacing subscription", "user_id", userID)
	}
	r.subs[userID] = sub
	return sub
}

// detach removes the subscription for userID and cancels its stream.
func (r *registry[T]) detach(userID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub, ok := r.subs[userID]; ok {
		sub.cancel()
		delete(r.subs, userID)
		r.logger.Debug("stop streaming", "user_id", userID)
	}
}

// release frees the slot on stream exit, but only if it still belongs to
// this subscription; a replacement must not be knocked out.
func (r *registry[T]) release(userID uint64, sub *subscription[T]) {
	sub.finish()
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.subs[userID] == sub {
		delete(r.subs, userID)
	}
}

// get returns the live subscription of userID, if any.
func (r *registry[T]) get(userID uint64) (*subscription[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[userID]
	if !ok || sub.closed() {
		return nil, false
	}
	return sub, true
}

// snapshot clones the current subscription set for fan-out.
func (r *registry[T]) snapshot() []*subscription[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*subscription[T], 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out
}

// snapshotOf clones the subscriptions belonging to the given users.
func (r *registry[T]) snapshotOf(userIDs []uint64) []*subscription[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*subscription[T]
	for _, id := range userIDs {
		if sub, ok := r.subs[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

// broadcast sends ev to every current subscriber. A dead subscriber never
// aborts the fan-out; the return value reports whether all sends landed so
// the caller can run actualize.
func (r *registry[T]) broadcast(ev T) bool {
	all := true
	for _, sub := range r.snapshot() {
		if !sub.send(ev) {
			all = false
		}
	}
	return all
}

// actualize reclaims entries whose stream has gone and reports how many
// were removed.
func (r *registry[T]) actualize() int {
	r.mu.Lock()
	before := len(r.subs)
	r.sweepLocked()
	removed := before - len(r.subs)
	r.mu.Unlock()
	if removed > 0 {
		r.logger.Debug("reclaimed dead subscriptions", "removed", removed)
	}
	return removed
}

func (r *registry[T]) sweepLocked() {
	for id, sub := range r.subs {
		if sub.closed() {
			delete(r.subs, id)
			r.logger.Debug("stop streaming", "user_id", id)
		}
	}
}
