package system

import (
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/ecs"
)

// NewTickScheduler wires the per-tick order: input, clip hand-off, mixer
// advance, character, camera, then event logging. input may be nil when
// nothing drives the characters.
func NewTickScheduler(log logrus.FieldLogger, input ecs.System, events *EventLogSystem) *ecs.Scheduler {
	s := ecs.NewScheduler()
	if input != nil {
		s.Add(input)
	}
	s.Add(NewClipLoaderSystem(log))
	s.Add(NewAnimationSystem())
	s.Add(NewCharacterSystem(log))
	s.Add(NewCameraSystem())
	if events != nil {
		s.Add(events)
	}
	return s
}
