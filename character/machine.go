package character

import (
	"errors"
	"fmt"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/input"
)

var ErrNotReady = errors.New("character: animation binding not ready")

// Transition describes one completed SetState.
type Transition struct {
	From    StateID
	To      StateID
	Initial bool
}

// Machine is the locomotion state machine. Exactly one state is current once
// the first SetState has succeeded.
type Machine struct {
	binding   *anim.Binding
	current   *state
	observers []func(Transition)
	// callbackErr holds a failure raised inside a finished listener until the
	// next Update can return it.
	callbackErr error
}

// NewMachine creates a machine over a binding that must eventually hold every
// name in ClipNames.
func NewMachine(binding *anim.Binding) *Machine {
	return &Machine{binding: binding}
}

// OnTransition registers fn to run after every state change.
func (m *Machine) OnTransition(fn func(Transition)) {
	if fn != nil {
		m.observers = append(m.observers, fn)
	}
}

// Current returns the active state. ok is false before the first SetState.
func (m *Machine) Current() (StateID, bool) {
	if m.current == nil {
		return Idle, false
	}
	return m.current.id, true
}

// Previous returns the state the current one was entered from.
func (m *Machine) Previous() (StateID, bool) {
	if m.current == nil || m.current.prev == nil {
		return Idle, false
	}
	return m.current.prev.id, true
}

// SetState transitions unconditionally to id. Setting the current state again
// is a no-op.
func (m *Machine) SetState(id StateID) error {
	if !id.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownState, uint8(id))
	}
	prev := m.current
	if prev != nil && prev.id == id {
		return nil
	}
	h, ok := m.binding.Lookup(id.String())
	if !ok {
		return fmt.Errorf("character: set state %s: %w", id, ErrNotReady)
	}

	if prev != nil {
		prev.exit()
	}
	next := &state{id: id, machine: m, prev: prev, handle: h}
	next.enter(prev)
	m.current = next

	t := Transition{To: id, Initial: prev == nil}
	if prev != nil {
		t.From = prev.id
	}
	for _, fn := range m.observers {
		fn(t)
	}
	return nil
}

// Update runs the current state's transition rules against in.
func (m *Machine) Update(dt float64, in input.Snapshot) error {
	if err := m.callbackErr; err != nil {
		m.callbackErr = nil
		return err
	}
	if m.current == nil {
		return nil
	}
	return m.current.update(in)
}

func (m *Machine) transitionFromCallback(id StateID) {
	if err := m.SetState(id); err != nil && m.callbackErr == nil {
		m.callbackErr = err
	}
}
