package ecs

import "github.com/RobeSantoro/avatar-controller/ecs/component"

// World owns entities, their component stores and the event queue shared by
// systems during a tick.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	err      error
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e and all of its components. It reports whether e
// was alive.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns the live entities in slot order.
func Entities(w *World) []Entity {
	return w.entities.list()
}

func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Fail records the first fatal error raised by a system. The game loop
// checks Err after each tick.
func (w *World) Fail(err error) {
	if w == nil || err == nil || w.err != nil {
		return
	}
	w.err = err
}

func (w *World) Err() error {
	if w == nil {
		return nil
	}
	return w.err
}
