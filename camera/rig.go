// Package camera implements a third-person follow camera that trails a target
// with frame-rate independent exponential smoothing.
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/RobeSantoro/avatar-controller/common"
)

var ErrInvalidSettings = errors.New("camera: invalid settings")

// Target is what the rig follows. Rotation must be the identity while the
// target has no orientation yet.
type Target interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
}

// View receives the smoothed transform each update.
type View interface {
	SetPosition(p mgl64.Vec3)
	LookAt(p mgl64.Vec3)
}

type Settings struct {
	// Offset is the camera position in the target's local frame.
	Offset mgl64.Vec3
	// LookAt is the aim point in the target's local frame.
	LookAt mgl64.Vec3
	// Decay is the fraction of the remaining distance left after one second.
	Decay     float64
	UseLookAt bool
	// SnapOnReady moves the camera straight to its ideal pose the first
	// time the target is ready. Otherwise it smooths in from where it is.
	SnapOnReady bool
}

func DefaultSettings() Settings {
	return Settings{
		Offset:    mgl64.Vec3{-0.35, 2, -2},
		LookAt:    mgl64.Vec3{0, 0, 5},
		Decay:     0.001,
		UseLookAt: true,
	}
}

func (s Settings) Validate() error {
	if !(s.Decay > 0 && s.Decay < 1) {
		return fmt.Errorf("%w: decay %v must be in (0, 1)", ErrInvalidSettings, s.Decay)
	}
	return nil
}

// SmoothingFactor returns 1 - k^dt clamped to [0, 1].
func SmoothingFactor(k, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return common.Clamp(1-math.Pow(k, dt), 0, 1)
}

type Rig struct {
	settings Settings
	target   Target
	view     View

	position mgl64.Vec3
	lookAt   mgl64.Vec3
}

// NewRig returns a rig at the origin. view may be nil.
func NewRig(settings Settings, view View) *Rig {
	return &Rig{settings: settings, view: view}
}

func (r *Rig) Attach(target Target) { r.target = target }
func (r *Rig) Target() Target       { return r.target }

func (r *Rig) Settings() Settings { return r.settings }

func (r *Rig) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.settings = s
	return nil
}

func (r *Rig) Position() mgl64.Vec3 { return r.position }
func (r *Rig) LookAt() mgl64.Vec3   { return r.lookAt }

func (r *Rig) IdealOffset() mgl64.Vec3 { return r.ideal(r.settings.Offset) }
func (r *Rig) IdealLookAt() mgl64.Vec3 { return r.ideal(r.settings.LookAt) }

func (r *Rig) ideal(local mgl64.Vec3) mgl64.Vec3 {
	if r.target == nil {
		return local
	}
	return r.target.Rotation().Rotate(local).Add(r.target.Position())
}

// Snap moves the camera straight to its ideal transform.
func (r *Rig) Snap() {
	if r.target == nil {
		return
	}
	r.position = r.IdealOffset()
	r.lookAt = r.IdealLookAt()
	r.apply()
}

// Update moves the smoothed transform toward the target's ideal one.
func (r *Rig) Update(dt float64) {
	if r.target == nil {
		return
	}
	t := SmoothingFactor(r.settings.Decay, dt)
	r.position = common.LerpVec3(r.position, r.IdealOffset(), t)
	if r.settings.UseLookAt {
		r.lookAt = common.LerpVec3(r.lookAt, r.IdealLookAt(), t)
	}
	r.apply()
}

func (r *Rig) apply() {
	if r.view == nil {
		return
	}
	r.view.SetPosition(r.position)
	if r.settings.UseLookAt {
		r.view.LookAt(r.lookAt)
	}
}
