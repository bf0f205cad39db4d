package playercam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string

	bus.Subscribe(KeyEventKind, func(ev Event) { order = append(order, "first") })
	bus.Subscribe(KeyEventKind, func(ev Event) { order = append(order, "second") })
	bus.Subscribe(ResizeEventKind, func(ev Event) { order = append(order, "resize") })

	bus.Publish(KeyEvent{Key: KeyW, Action: Press})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	sub := bus.Subscribe(MouseMoveEventKind, func(ev Event) { calls++ })

	bus.Publish(MouseMoveEvent{X: 1, Y: 2})
	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub))
	bus.Publish(MouseMoveEvent{X: 3, Y: 4})

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.SubscriberCount(MouseMoveEventKind))
}

func TestEventBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := NewEventBus()
	var calls []int
	var second Subscription

	bus.Subscribe(KeyEventKind, func(ev Event) {
		calls = append(calls, 1)
		bus.Unsubscribe(second)
	})
	second = bus.Subscribe(KeyEventKind, func(ev Event) { calls = append(calls, 2) })

	bus.Publish(KeyEvent{Key: KeyA})
	bus.Publish(KeyEvent{Key: KeyA})

	assert.Equal(t, []int{1, 2, 1}, calls)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "key", KeyEvent{}.Kind().String())
	assert.Equal(t, "mouse-button", MouseButtonEvent{}.Kind().String())
	assert.Equal(t, "mouse-move", MouseMoveEvent{}.Kind().String())
	assert.Equal(t, "resize", ResizeEvent{}.Kind().String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
