package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 64

// Broker is a generic pub/sub event broker.
// Subscribers may receive every event or only a filtered set of event
// types; publishers never block on slow consumers.
type Broker[T any] struct {
	subs       map[chan Event[T]]map[EventType]struct{}
	mu         sync.RWMutex
	done       chan struct{}
	bufferSize int
}

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]map[EventType]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe creates a subscription that receives every published event.
// The channel is automatically closed when ctx is cancelled.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	return b.subscribe(ctx, nil)
}

// SubscribeTypes creates a subscription that only receives the named
// event types. With no types it behaves like Subscribe.
func (b *Broker[T]) SubscribeTypes(ctx context.Context, types ...EventType) <-chan Event[T] {
	if len(types) == 0 {
		return b.subscribe(ctx, nil)
	}
	filter := make(map[EventType]struct{}, len(types))
	for _, et := range types {
		filter[et] = struct{}{}
	}
	return b.subscribe(ctx, filter)
}

func (b *Broker[T]) subscribe(ctx context.Context, filter map[EventType]struct{}) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Check if broker is closed
	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = filter

	// Cleanup goroutine
	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return // Already closed
		default:
		}

		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

// Publish sends an event to all subscribers whose filter admits it.
// Non-blocking: drops events if subscriber channel is full.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	for sub, filter := range b.subs {
		if filter != nil {
			if _, ok := filter[eventType]; !ok {
				continue
			}
		}
		select {
		case sub <- event:
			// Delivered
		default:
			// Channel full - drop to prevent blocking
		}
	}
}

// Close shuts down the broker and all subscriber channels.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return // Already closed
	default:
	}

	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
