package component

import "github.com/RobeSantoro/avatar-controller/camera"

type Camera struct {
	Rig    *camera.Rig
	Target string
	// Snapped is set once the rig has jumped to its first ideal pose.
	Snapped bool
}

var CameraComponent = NewComponent[Camera]()
