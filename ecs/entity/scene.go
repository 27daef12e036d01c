package entity

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/camera"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/system"
	"github.com/RobeSantoro/avatar-controller/prefabs"
	"github.com/RobeSantoro/avatar-controller/script"
)

// Scene is the player and its camera, built from the prefabs.
type Scene struct {
	Player    ecs.Entity
	Camera    ecs.Entity
	Character *prefabs.CharacterSpec
}

// SceneOptions configure BuildScene. Frames select scripted input.
type SceneOptions struct {
	Frames []script.Frame
	View   camera.View
	Log    logrus.FieldLogger
}

// BuildScene loads the character, camera and animation prefabs, starts the
// clip loader and spawns both entities. Clips keep streaming in after it
// returns; the loader stops when ctx is done.
func BuildScene(ctx context.Context, w *ecs.World, opts SceneOptions) (*Scene, error) {
	charSpec, err := prefabs.LoadCharacterSpec()
	if err != nil {
		return nil, err
	}
	profile, err := charSpec.Profile()
	if err != nil {
		return nil, err
	}
	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	settings, err := camSpec.Settings()
	if err != nil {
		return nil, err
	}
	clips, err := prefabs.LoadAnimationSetSpec()
	if err != nil {
		return nil, err
	}
	if err := clips.Validate(); err != nil {
		return nil, err
	}

	player, err := NewCharacter(w, CharacterOptions{
		Profile: profile,
		Loads:   system.LoadClips(ctx, clips.Clips, clips.Latency()),
		Frames:  opts.Frames,
		Log:     opts.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	cam, err := NewCamera(w, settings, camSpec.Target, opts.View)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &Scene{Player: player, Camera: cam, Character: charSpec}, nil
}
