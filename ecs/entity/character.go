package entity

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/character"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/script"
)

type CharacterOptions struct {
	Profile character.AccelerationProfile
	// Loads delivers the character's clips; see system.LoadClips.
	Loads <-chan component.ClipLoad
	// Frames, when set, drive the character from a script instead of a
	// device.
	Frames []script.Frame
	Log    logrus.FieldLogger
}

// NewCharacter builds the player entity: controller, mixer and binding,
// input, transform and tag. State transitions are pushed onto the world's
// event queue.
func NewCharacter(w *ecs.World, opts CharacterOptions) (ecs.Entity, error) {
	if err := opts.Profile.Validate(); err != nil {
		return 0, fmt.Errorf("character: %w", err)
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	e := ecs.CreateEntity(w)
	binding := anim.NewBinding(character.ClipNames()...)
	ctrl := character.NewController(binding, opts.Profile, log.WithField("entity", e))
	ctrl.Machine().OnTransition(func(t character.Transition) {
		evt := ecs.StateChanged{To: t.To.String(), Initial: t.Initial}
		if !t.Initial {
			evt.From = t.From.String()
		}
		w.Events().Push(ecs.Event{Entity: e, Kind: ecs.EventStateChanged, Data: evt})
	})

	steps := []struct {
		name string
		add  func() error
	}{
		{"player tag", func() error {
			return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		}},
		{"transform", func() error {
			return ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform())
		}},
		{"input", func() error {
			return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
		}},
		{"character", func() error {
			return ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Controller: ctrl})
		}},
		{"animation", func() error {
			return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{
				Mixer:   anim.NewMixer(),
				Binding: binding,
				Loads:   opts.Loads,
			})
		}},
		{"script input", func() error {
			if opts.Frames == nil {
				return nil
			}
			for i, f := range opts.Frames {
				if !(f.DT > 0) {
					return fmt.Errorf("%w: frame %d dt %v", script.ErrBadFrame, i, f.DT)
				}
			}
			return ecs.Add(w, e, component.ScriptInputComponent.Kind(), &component.ScriptInput{Frames: opts.Frames})
		}},
	}
	for _, step := range steps {
		if err := step.add(); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("character: add %s: %w", step.name, err)
		}
	}
	return e, nil
}
