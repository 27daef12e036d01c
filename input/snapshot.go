// Package input holds the frame-coherent intent snapshot consumed by the
// character controller. Device polling lives with the collectors that fill it.
package input

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownIntent = errors.New("input: unknown intent")

// Intent names one boolean player intention.
type Intent uint8

const (
	Advance Intent = iota
	Retreat
	TurnLeft
	TurnRight
	Sprint
	Primary
	Secondary
	DebugToggle

	intentCount
)

var intentNames = [intentCount]string{
	Advance:     "advance",
	Retreat:     "retreat",
	TurnLeft:    "turn_left",
	TurnRight:   "turn_right",
	Sprint:      "sprint",
	Primary:     "primary",
	Secondary:   "secondary",
	DebugToggle: "debug",
}

func (i Intent) String() string {
	if i >= intentCount {
		return fmt.Sprintf("intent(%d)", uint8(i))
	}
	return intentNames[i]
}

// Intents returns every known intent in declaration order.
func Intents() []Intent {
	out := make([]Intent, 0, intentCount)
	for i := Intent(0); i < intentCount; i++ {
		out = append(out, i)
	}
	return out
}

// ParseIntent resolves an intent by name. Dashes and underscores are
// interchangeable and case is ignored.
func ParseIntent(name string) (Intent, error) {
	clean := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, n := range intentNames {
		if n == clean {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}

// Snapshot is the set of intents for one tick. Every intent is always present;
// the zero value has all of them released. Snapshots are values so a reader
// can never observe a collector mutating them mid-tick.
type Snapshot struct {
	held [intentCount]bool
}

// FromNames builds a snapshot with the named intents held.
func FromNames(names ...string) (Snapshot, error) {
	var s Snapshot
	for _, name := range names {
		i, err := ParseIntent(name)
		if err != nil {
			return Snapshot{}, err
		}
		s.held[i] = true
	}
	return s, nil
}

// Of builds a snapshot with the given intents held.
func Of(intents ...Intent) Snapshot {
	var s Snapshot
	for _, i := range intents {
		s.Set(i, true)
	}
	return s
}

func (s Snapshot) Held(i Intent) bool {
	if i >= intentCount {
		return false
	}
	return s.held[i]
}

func (s *Snapshot) Set(i Intent, held bool) {
	if s == nil || i >= intentCount {
		return
	}
	s.held[i] = held
}

// Map returns the snapshot as intent name -> held, with every intent present.
func (s Snapshot) Map() map[string]bool {
	m := make(map[string]bool, intentCount)
	for i, n := range intentNames {
		m[n] = s.held[i]
	}
	return m
}

func (s Snapshot) String() string {
	var held []string
	for i, n := range intentNames {
		if s.held[i] {
			held = append(held, n)
		}
	}
	if len(held) == 0 {
		return "[]"
	}
	return "[" + strings.Join(held, " ") + "]"
}
