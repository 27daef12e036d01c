package system

import (
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
)

// AnimationSystem advances every mixer. It runs before CharacterSystem so
// finished events reach the state machine in the same tick.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(_ ecs.Entity, a *component.Animation) {
		a.Mixer.Update(dt)
	})
}
