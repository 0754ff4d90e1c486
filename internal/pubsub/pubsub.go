// Package pubsub provides a replay-of-one broadcast cell: a single-slot
// last-value cache plus subscriber fan-out. New subscribers immediately
// receive the current value, then every subsequent change. Components mount
// at arbitrary times (e.g. after a session is already established), so the
// replay is what keeps late subscribers consistent.
package pubsub

import "sync"

// Value is a broadcastable cell holding the latest T.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	subs    map[int]chan T
	nextID  int
}

// NewValue creates a cell seeded with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial, subs: map[int]chan T{}}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores the value and fans it out to all subscribers. The fan-out is
// non-blocking, so it runs under the lock; that serializes sends against the
// close in cancel, which would otherwise race.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = val

	for _, ch := range v.subs {
		// Slow subscribers drop intermediate values; they always converge on
		// the latest because the channel keeps exactly one pending slot.
		select {
		case ch <- val:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- val:
			default:
			}
		}
	}
}

// Subscribe registers a new subscriber. The returned channel delivers the
// current value first, then future Sets. Call cancel to unsubscribe and close
// the channel.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	ch := make(chan T, 1)
	ch <- v.current
	v.subs[id] = ch
	v.mu.Unlock()

	cancel := func() {
		v.mu.Lock()
		if c, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(c)
		}
		v.mu.Unlock()
	}
	return ch, cancel
}
