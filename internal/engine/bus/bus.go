// Package bus implements a bounded, lossy, multi-consumer broadcast channel.
package bus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/zerr"
)

var (
	// ErrClosed is returned once the bus is closed and a subscriber has drained it,
	// or after the subscription itself was closed.
	ErrClosed = zerr.New("bus closed")

	// ErrEmpty is returned by TryRecv when no message is pending.
	ErrEmpty = zerr.New("no message pending")
)

// LaggedError reports that a subscriber fell behind and lost messages.
// Delivery resumes from the oldest message still retained.
type LaggedError struct {
	Skipped uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("lagged by %d messages", e.Skipped)
}

// IsLagged returns the number of skipped messages if err is a *LaggedError.
func IsLagged(err error) (uint64, bool) {
	var lagged *LaggedError
	if errors.As(err, &lagged) {
		return lagged.Skipped, true
	}
	return 0, false
}

// Bus is a broadcast channel retaining the last capacity messages.
// Send never blocks; each subscriber reads at its own pace.
type Bus[T any] struct {
	mu     sync.Mutex
	buf    []T
	sent   uint64
	subs   map[*Subscription[T]]struct{}
	closed bool
}

// New creates a bus retaining up to capacity messages. Capacity below one is raised to one.
func New[T any](capacity int) *Bus[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bus[T]{
		buf:  make([]T, capacity),
		subs: make(map[*Subscription[T]]struct{}),
	}
}

// Cap returns the number of messages the bus retains.
func (b *Bus[T]) Cap() int {
	return len(b.buf)
}

// Send publishes v to every live subscriber and returns how many there are.
// Sending on a closed bus is a no-op that returns zero.
func (b *Bus[T]) Send(v T) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	b.buf[b.sent%uint64(len(b.buf))] = v
	b.sent++
	for s := range b.subs {
		s.notify()
	}
	return len(b.subs)
}

// Subscribe returns a subscription that observes every message sent from now on.
func (b *Bus[T]) Subscribe() *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Subscription[T]{
		bus:   b,
		next:  b.sent,
		ready: make(chan struct{}, 1),
	}
	if b.closed {
		s.notify()
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Close marks the bus as closed. Subscribers drain what is retained and then see ErrClosed.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.notify()
	}
}

// Subscription is one consumer's cursor into a Bus. It is not safe for use
// by more than one goroutine at a time.
type Subscription[T any] struct {
	bus      *Bus[T]
	next     uint64
	ready    chan struct{}
	detached bool
}

// Ready returns a channel that receives a value whenever messages may be pending.
// Callers should drain with TryRecv until ErrEmpty after each wake-up.
func (s *Subscription[T]) Ready() <-chan struct{} {
	return s.ready
}

// TryRecv returns the next message without blocking.
//
// It returns ErrEmpty when nothing is pending, a *LaggedError when messages
// were overwritten before this subscriber read them, and ErrClosed when the
// bus is closed and drained.
func (s *Subscription[T]) TryRecv() (T, error) {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if s.detached {
		return zero, ErrClosed
	}

	capacity := uint64(len(b.buf))
	if b.sent > capacity && s.next < b.sent-capacity {
		oldest := b.sent - capacity
		skipped := oldest - s.next
		s.next = oldest
		s.notify()
		return zero, &LaggedError{Skipped: skipped}
	}

	if s.next < b.sent {
		v := b.buf[s.next%capacity]
		s.next++
		if s.next < b.sent {
			s.notify()
		}
		return v, nil
	}

	if b.closed {
		s.notify()
		return zero, ErrClosed
	}
	return zero, ErrEmpty
}

// Recv blocks until a message, a lag report, closure or context cancellation.
func (s *Subscription[T]) Recv(ctx context.Context) (T, error) {
	for {
		v, err := s.TryRecv()
		if !errors.Is(err, ErrEmpty) {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-s.ready:
		}
	}
}

// Close unsubscribes. Pending messages are discarded.
func (s *Subscription[T]) Close() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	s.detached = true
	delete(b.subs, s)
	s.notify()
}

// notify must be called with the bus lock held.
func (s *Subscription[T]) notify() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}
