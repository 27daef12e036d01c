package character

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/RobeSantoro/avatar-controller/input"
)

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldForward = mgl64.Vec3{0, 0, 1}
	worldRight   = mgl64.Vec3{1, 0, 0}
)

// MotionState is the continuous state integrated by a MotionModel. Velocity
// axes are (lateral, vertical, forward) in the character's local frame.
type MotionState struct {
	Velocity    mgl64.Vec3
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// MotionModel turns intents into damped velocity, yaw and position.
type MotionModel struct {
	profile AccelerationProfile
	state   MotionState
}

func NewMotionModel(profile AccelerationProfile) *MotionModel {
	return &MotionModel{
		profile: profile,
		state:   MotionState{Orientation: mgl64.QuatIdent()},
	}
}

func (m *MotionModel) Profile() AccelerationProfile { return m.profile }

// SetProfile swaps the tuning. Call between ticks only.
func (m *MotionModel) SetProfile(p AccelerationProfile) { m.profile = p }

func (m *MotionModel) State() MotionState   { return m.state }
func (m *MotionModel) Position() mgl64.Vec3 { return m.state.Position }
func (m *MotionModel) Rotation() mgl64.Quat { return m.state.Orientation }
func (m *MotionModel) Velocity() mgl64.Vec3 { return m.state.Velocity }
func (m *MotionModel) Forward() mgl64.Vec3 {
	return m.state.Orientation.Rotate(worldForward).Normalize()
}
func (m *MotionModel) Speed() float64          { return math.Abs(m.state.Velocity[2]) }
func (m *MotionModel) Yaw() float64            { f := m.Forward(); return math.Atan2(f[0], f[2]) }
func (m *MotionModel) Reset(state MotionState) { m.state = state }

// Update integrates one frame of dt seconds. The current locomotion state
// gates acceleration: while dancing the character only decelerates.
func (m *MotionModel) Update(dt float64, in input.Snapshot, current StateID) MotionState {
	if dt <= 0 {
		return m.state
	}
	steps := 1
	if m.profile.MaxStep > 0 && dt > m.profile.MaxStep {
		steps = int(math.Ceil(dt / m.profile.MaxStep))
	}
	h := dt / float64(steps)
	for range steps {
		m.step(h, in, current)
	}
	return m.state
}

func (m *MotionModel) step(dt float64, in input.Snapshot, current StateID) {
	v := m.state.Velocity
	dec := m.profile.Deceleration

	frameDec := mgl64.Vec3{v[0] * dec[0] * dt, v[1] * dec[1] * dt, v[2] * dec[2] * dt}
	// damping may bring forward speed to zero but never past it
	frameDec[2] = math.Copysign(math.Min(math.Abs(frameDec[2]), math.Abs(v[2])), frameDec[2])
	v = v.Add(frameDec)

	acc := m.profile.Acceleration
	if in.Held(input.Sprint) {
		acc = acc.Mul(m.profile.SprintMultiplier)
	}
	if current == Dance {
		acc = mgl64.Vec3{}
	}

	if in.Held(input.Advance) {
		v[2] += acc[2] * dt
	}
	if in.Held(input.Retreat) {
		v[2] -= acc[2] * dt
	}
	m.state.Velocity = v

	r := m.state.Orientation
	if in.Held(input.TurnLeft) {
		r = r.Mul(mgl64.QuatRotate(m.profile.TurnRate*dt, worldUp))
	}
	if in.Held(input.TurnRight) {
		r = r.Mul(mgl64.QuatRotate(-m.profile.TurnRate*dt, worldUp))
	}
	m.state.Orientation = r.Normalize()

	forward := m.state.Orientation.Rotate(worldForward).Normalize()
	right := m.state.Orientation.Rotate(worldRight).Normalize()
	m.state.Position = m.state.Position.
		Add(forward.Mul(v[2] * dt)).
		Add(right.Mul(v[0] * dt))
}
