package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the rendered pose of an entity. Systems copy it from the
// owning simulation each tick; nothing reads it back.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

func NewTransform() *Transform {
	return &Transform{Rotation: mgl64.QuatIdent()}
}

var TransformComponent = NewComponent[Transform]()
