package ecs

import "reflect"

// Channel is a FIFO buffer of intent values of one kind T (§3 Event
// channel). Producers Publish, consumers ConsumeAll drain in FIFO order.
// Delivery is exactly-once per ConsumeAll call; channels of different
// kinds carry no ordering guarantee relative to each other (§5).
type Channel[T any] struct {
	buf []T
}

// Publish appends a value to the channel. Safe to call from any system.
func (c *Channel[T]) Publish(value T) {
	c.buf = append(c.buf, value)
}

// ConsumeAll drains every buffered value in FIFO order, invoking fn once
// per value, then empties the channel.
func (c *Channel[T]) ConsumeAll(fn func(T)) {
	for _, v := range c.buf {
		fn(v)
	}
	c.buf = c.buf[:0]
}

// Len reports how many values are currently buffered.
func (c *Channel[T]) Len() int { return len(c.buf) }

// channelRegistry lazily creates one Channel[T] per intent kind T. The
// channels are stored type-erased in a map keyed by T's reflect.Type and
// recovered through a type assertion in the typed Events accessor; they
// are not keyed by ComponentId.
type channelRegistry struct {
	channels map[reflect.Type]any
}

func newChannelRegistry() *channelRegistry {
	return &channelRegistry{channels: make(map[reflect.Type]any)}
}

// Events returns (lazily creating) the Channel for intent kind T.
func Events[T any](w *World) *Channel[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	if existing, ok := w.channels.channels[typ]; ok {
		return existing.(*Channel[T])
	}
	ch := &Channel[T]{}
	w.channels.channels[typ] = ch
	return ch
}

// Well-known intents published by the core itself (§4.5).
type EntitySpawned struct{ Entity Entity }
type EntityDestroyed struct{ Entity Entity }
