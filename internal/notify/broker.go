package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

// ErrClosed is returned by Next once a subscription is closed and drained.
var ErrClosed = errors.New("subscription closed")

// Broker fans changes out to subscriptions.
type Broker struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[uint64]*Subscription
	logger *slog.Logger
}

// NewBroker creates a broker. A nil logger discards output.
func NewBroker(logger *slog.Logger) *Broker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Broker{
		subs:   make(map[uint64]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a new subscription. It receives every change published
// after this call.
func (b *Broker) Subscribe() *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		broker: b,
		queue:  newChangeQueue(),
	}
	b.subs[sub.id] = sub
	b.logger.Debug("subscribed", "subscription", sub.id, "subscribers", len(b.subs))
	return sub
}

// Publish delivers c to every subscription and returns how many received it.
func (b *Broker) Publish(c Change) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, sub := range b.subs {
		if sub.queue.Enqueue(c) {
			delivered++
		}
	}
	b.logger.Debug("change published",
		"revision", c.Revision,
		"collections", c.Collections,
		"subscribers", delivered)
	return delivered
}

// Len returns the number of live subscriptions.
func (b *Broker) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscription.
func (b *Broker) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*Subscription)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.queue.Close()
	}
}

func (b *Broker) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscription is one listener's queue of changes.
type Subscription struct {
	id     uint64
	broker *Broker
	queue  *changeQueue
	once   sync.Once
}

// Next blocks until a change is available, ctx is done or the subscription is
// closed. Changes buffered before Close are still returned.
func (s *Subscription) Next(ctx context.Context) (Change, error) {
	for {
		if c, ok := s.queue.TryDequeue(); ok {
			return c, nil
		}
		if s.queue.Closed() {
			return Change{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return Change{}, ctx.Err()
		case <-s.queue.Wait():
		}
	}
}

// TryNext returns a buffered change without blocking.
func (s *Subscription) TryNext() (Change, bool) {
	return s.queue.TryDequeue()
}

// Pending returns the number of buffered changes.
func (s *Subscription) Pending() int {
	return s.queue.Len()
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s.id)
		s.queue.Close()
	})
}
