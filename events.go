package playercam

import (
	"github.com/google/uuid"
)

type EventKind int

const (
	KeyEventKind EventKind = iota
	MouseButtonEventKind
	MouseMoveEventKind
	ResizeEventKind
)

func (k EventKind) String() string {
	switch k {
	case KeyEventKind:
		return "key"
	case MouseButtonEventKind:
		return "mouse-button"
	case MouseMoveEventKind:
		return "mouse-move"
	case ResizeEventKind:
		return "resize"
	}
	return "unknown"
}

type Action int

const (
	Press Action = iota
	Release
)

type Event interface {
	Kind() EventKind
}

type KeyEvent struct {
	Key    Key
	Action Action
}

// MouseButtonEvent carries the pointer position at the time of the press or
// release, in window coordinates.
type MouseButtonEvent struct {
	Button Key
	Action Action
	X, Y   float64
}

type MouseMoveEvent struct {
	X, Y float64
}

type ResizeEvent struct {
	Width, Height int
}

func (KeyEvent) Kind() EventKind         { return KeyEventKind }
func (MouseButtonEvent) Kind() EventKind { return MouseButtonEventKind }
func (MouseMoveEvent) Kind() EventKind   { return MouseMoveEventKind }
func (ResizeEvent) Kind() EventKind      { return ResizeEventKind }

type Subscription uuid.UUID

type EventHandler func(ev Event)

type subscriber struct {
	id      Subscription
	handler EventHandler
}

// EventBus dispatches events synchronously, in subscription order, on the
// caller's goroutine.
type EventBus struct {
	subscribers map[EventKind][]subscriber
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventKind][]subscriber),
	}
}

func (bus *EventBus) Subscribe(kind EventKind, handler EventHandler) Subscription {
	sub := Subscription(uuid.New())
	bus.subscribers[kind] = append(bus.subscribers[kind], subscriber{id: sub, handler: handler})
	return sub
}

// Unsubscribe removes the handler registered under sub. It reports whether
// anything was removed.
func (bus *EventBus) Unsubscribe(sub Subscription) bool {
	for kind, subs := range bus.subscribers {
		for i, s := range subs {
			if s.id != sub {
				continue
			}
			// Copy so a Publish iterating the old slice is unaffected.
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			bus.subscribers[kind] = next
			return true
		}
	}
	return false
}

func (bus *EventBus) Publish(ev Event) {
	for _, s := range bus.subscribers[ev.Kind()] {
		s.handler(ev)
	}
}

func (bus *EventBus) SubscriberCount(kind EventKind) int {
	return len(bus.subscribers[kind])
}
