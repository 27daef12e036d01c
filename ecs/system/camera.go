package system

import (
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/prefabs"
)

// CameraSystem attaches each rig to its target's controller and smooths it.
// A rig with SnapOnReady jumps to its ideal pose once the target is ready.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		target, ok := findTarget(w, cam.Target)
		if !ok {
			return
		}
		ch, ok := ecs.Get(w, target, component.CharacterComponent.Kind())
		if !ok {
			return
		}
		if cam.Rig.Target() == nil {
			cam.Rig.Attach(ch.Controller)
		}
		if !cam.Snapped && ch.Ready && cam.Rig.Settings().SnapOnReady {
			cam.Rig.Snap()
			cam.Snapped = true
		} else {
			cam.Rig.Update(dt)
		}
		t.Position = cam.Rig.Position()
	})
}

func findTarget(w *ecs.World, name string) (ecs.Entity, bool) {
	switch name {
	case "", prefabs.PlayerTarget:
		return ecs.First(w, component.PlayerTagComponent.Kind())
	}
	return 0, false
}
