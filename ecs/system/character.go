package system

import (
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
)

// CharacterSystem runs each controller with the entity's input and mirrors
// the resulting pose into its Transform.
type CharacterSystem struct {
	log logrus.FieldLogger
}

func NewCharacterSystem(log logrus.FieldLogger) *CharacterSystem {
	return &CharacterSystem{log: log}
}

func (s *CharacterSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.CharacterComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, c *component.Character, in *component.Input, t *component.Transform) {
			if err := c.Controller.Update(dt, in.Snapshot); err != nil {
				s.log.WithError(err).WithField("entity", e).Error("character update failed")
				w.Fail(err)
				return
			}
			if !c.Ready && c.Controller.Ready() {
				c.Ready = true
				w.Events().Push(ecs.Event{Entity: e, Kind: ecs.EventReady})
			}
			t.Position = c.Controller.Position()
			t.Rotation = c.Controller.Rotation()
		})
}
