package character

import (
	"errors"
	"fmt"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/input"
)

var ErrUnknownState = errors.New("character: unknown locomotion state")

// StateID enumerates the closed set of locomotion states.
type StateID uint8

const (
	Idle StateID = iota
	Walk
	Run
	WalkBack
	Jump
	JumpRun
	Dance

	stateCount
)

var stateNames = [stateCount]string{
	Idle:     "idle",
	Walk:     "walk",
	Run:      "run",
	WalkBack: "walkback",
	Jump:     "jump",
	JumpRun:  "jumprun",
	Dance:    "dance",
}

// Crossfade durations in seconds.
const (
	fadeLocomotion = 0.5
	fadeAction     = 0.1
	fadeDance      = 0.2
)

func (id StateID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("state(%d)", uint8(id))
	}
	return stateNames[id]
}

func (id StateID) Valid() bool { return id < stateCount }

// OneShot reports whether the state leaves on clip completion instead of input.
func (id StateID) OneShot() bool {
	return id == Jump || id == JumpRun || id == Dance
}

func StateIDs() []StateID {
	out := make([]StateID, 0, stateCount)
	for id := StateID(0); id < stateCount; id++ {
		out = append(out, id)
	}
	return out
}

// ClipNames lists the binding names the machine needs before it can run.
func ClipNames() []string {
	return append([]string(nil), stateNames[:]...)
}

func ParseStateID(name string) (StateID, error) {
	for i, n := range stateNames {
		if n == name {
			return StateID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

// crossFadeDuration is the blend time between two states; it is symmetric.
func crossFadeDuration(from, to StateID) float64 {
	switch {
	case from == Dance || to == Dance:
		return fadeDance
	case from.OneShot() || to.OneShot():
		return fadeAction
	default:
		return fadeLocomotion
	}
}

// phaseLinked reports whether two clips share a gait so the incoming clip
// should continue from the outgoing clip's relative time.
func phaseLinked(from, to StateID) bool {
	return (from == Walk && to == Run) || (from == Run && to == Walk)
}

// finishTarget is the state a one-shot hands over to when its clip ends.
func finishTarget(id StateID) StateID {
	if id == JumpRun {
		return Run
	}
	return Idle
}

// state is a single visit to a locomotion state. A new value is created on
// every transition and discarded on exit.
type state struct {
	id      StateID
	machine *Machine
	prev    *state
	handle  anim.Handle

	finished   anim.Token
	subscribed bool
}

func (s *state) enter(prev *state) {
	h := s.handle
	if s.id.OneShot() {
		h.SetLoopOnce()
		h.ClampWhenFinished(true)
		s.finished = h.SubscribeFinished(s.onFinished)
		s.subscribed = true
	}

	if prev == nil {
		h.Play()
		return
	}

	if phaseLinked(prev.id, s.id) {
		h.SetTime(seededTime(prev.handle, h))
	} else {
		h.SetTime(0)
		h.SetTimeScale(1)
		h.SetWeight(1)
	}
	h.CrossFadeFrom(prev.handle, crossFadeDuration(prev.id, s.id), true)
	h.Play()
}

func (s *state) exit() {
	if s.subscribed {
		s.handle.UnsubscribeFinished(s.finished)
		s.subscribed = false
	}
	// drop the chain so visits do not keep each other alive
	s.prev = nil
}

func (s *state) onFinished() {
	s.machine.transitionFromCallback(finishTarget(s.id))
}

func (s *state) update(in input.Snapshot) error {
	m := s.machine
	advance := in.Held(input.Advance)
	retreat := in.Held(input.Retreat)

	switch s.id {
	case Idle:
		switch {
		case advance:
			return m.SetState(Walk)
		case retreat:
			return m.SetState(WalkBack)
		case in.Held(input.Primary):
			return m.SetState(Jump)
		case in.Held(input.Secondary):
			return m.SetState(Dance)
		}
		return nil
	case Walk:
		if advance {
			if in.Held(input.Sprint) {
				return m.SetState(Run)
			}
			return nil
		}
		return m.SetState(Idle)
	case Run:
		if advance {
			if in.Held(input.Primary) {
				return m.SetState(JumpRun)
			}
			if !in.Held(input.Sprint) {
				return m.SetState(Walk)
			}
			return nil
		}
		return m.SetState(Idle)
	case WalkBack:
		if retreat {
			return nil
		}
		return m.SetState(Idle)
	case Jump, JumpRun, Dance:
		// waiting for the finished event
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownState, uint8(s.id))
	}
}

func seededTime(from, to anim.Handle) float64 {
	d := from.ClipDuration()
	if d <= 0 {
		return 0
	}
	return from.Time() * (to.ClipDuration() / d)
}
