package playercam

import (
	"github.com/google/uuid"
)

// SelectionRegistry tracks which camera, if any, currently has input focus.
type SelectionRegistry struct {
	selected  uuid.UUID
	listeners []selectionListener
}

type selectionListener struct {
	id Subscription
	fn func(prev, next uuid.UUID)
}

func NewSelectionRegistry() *SelectionRegistry {
	return &SelectionRegistry{}
}

// Selected returns the focused camera. uuid.Nil means nothing is selected.
func (r *SelectionRegistry) Selected() uuid.UUID {
	return r.selected
}

func (r *SelectionRegistry) IsSelected(id uuid.UUID) bool {
	return id != uuid.Nil && r.selected == id
}

func (r *SelectionRegistry) Select(id uuid.UUID) {
	r.set(id)
}

// Deselect clears the selection only if id holds it.
func (r *SelectionRegistry) Deselect(id uuid.UUID) {
	if r.IsSelected(id) {
		r.set(uuid.Nil)
	}
}

func (r *SelectionRegistry) Clear() {
	r.set(uuid.Nil)
}

// OnChange registers fn to run after every selection change.
func (r *SelectionRegistry) OnChange(fn func(prev, next uuid.UUID)) Subscription {
	sub := Subscription(uuid.New())
	r.listeners = append(r.listeners, selectionListener{id: sub, fn: fn})
	return sub
}

func (r *SelectionRegistry) RemoveListener(sub Subscription) bool {
	for i, l := range r.listeners {
		if l.id == sub {
			r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func (r *SelectionRegistry) set(id uuid.UUID) {
	if r.selected == id {
		return
	}
	prev := r.selected
	r.selected = id
	for _, l := range r.listeners {
		l.fn(prev, id)
	}
}
