package entity

import (
	"errors"
	"fmt"

	"github.com/RobeSantoro/avatar-controller/camera"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/prefabs"
)

var ErrUnknownTarget = errors.New("camera: unknown target")

// NewCamera builds a follow camera for target ("player" or empty for the
// tagged player). view may be nil.
func NewCamera(w *ecs.World, settings camera.Settings, target string, view camera.View) (ecs.Entity, error) {
	if err := settings.Validate(); err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !prefabs.KnownCameraTarget(target) {
		return 0, fmt.Errorf("%w %q", ErrUnknownTarget, target)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), component.NewTransform()); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Rig:    camera.NewRig(settings, view),
		Target: target,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return e, nil
}
