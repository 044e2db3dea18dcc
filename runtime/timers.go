package runtime

import (
	"sync"
	"time"
)

// Fired is handed to the fire callback when a timer elapses.
type Fired[T any] struct {
	Key     string
	Seq     uint64
	Payload T
}

type handle struct {
	seq   uint64
	timer *time.Timer
}

// Timers is a table of named, cancelable delayed payloads.
// At most one handle is live per key: scheduling a key again stops the previous timer.
//
// A timer that already elapsed may still have its payload queued somewhere.
// The consumer calls Claim with the fired sequence number before acting on it;
// Claim fails once the key was canceled or rescheduled, so a cancellation
// applied by the consumer always wins over a payload fired just before.
type Timers[T any] struct {
	mu      sync.Mutex
	seq     uint64
	handles map[string]handle
	fire    func(Fired[T])
}

func NewTimers[T any](fire func(Fired[T])) *Timers[T] {
	return &Timers[T]{handles: make(map[string]handle), fire: fire}
}

// Schedule arms key to fire payload after delay and returns the handle sequence.
func (t *Timers[T]) Schedule(key string, delay time.Duration, payload T) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.handles[key]; ok {
		h.timer.Stop()
	}
	t.seq++
	seq := t.seq
	t.handles[key] = handle{
		seq: seq,
		timer: time.AfterFunc(delay, func() {
			t.fire(Fired[T]{Key: key, Seq: seq, Payload: payload})
		}),
	}
	return seq
}

// Cancel disarms key. It is a no-op when the key is unknown or already claimed.
func (t *Timers[T]) Cancel(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.handles[key]
	if !ok {
		return false
	}
	h.timer.Stop()
	delete(t.handles, key)
	return true
}

// Claim consumes the handle if seq is still the live one for key.
func (t *Timers[T]) Claim(key string, seq uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	h, ok := t.handles[key]
	if !ok || h.seq != seq {
		return false
	}
	delete(t.handles, key)
	return true
}

func (t *Timers[T]) Pending(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.handles[key]
	return ok
}

func (t *Timers[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.handles)
}

// Stop disarms every timer.
func (t *Timers[T]) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, h := range t.handles {
		h.timer.Stop()
		delete(t.handles, key)
	}
}
