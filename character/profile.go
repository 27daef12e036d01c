package character

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidProfile = errors.New("character: invalid acceleration profile")

// AccelerationProfile is the immutable tuning of a MotionModel. Axes are
// (lateral, vertical, forward).
type AccelerationProfile struct {
	Acceleration mgl64.Vec3
	// Deceleration coefficients scale velocity into a damping term; every axis
	// must be strictly negative.
	Deceleration     mgl64.Vec3
	SprintMultiplier float64
	// TurnRate is the yaw speed in radians per second.
	TurnRate float64
	// MaxStep bounds a single integration step in seconds. Longer frames are
	// split into equal sub-steps; zero integrates each frame in one step.
	MaxStep float64
}

func DefaultProfile() AccelerationProfile {
	return AccelerationProfile{
		Acceleration:     mgl64.Vec3{1.0, 0.25, 10.0},
		Deceleration:     mgl64.Vec3{-0.0005, -0.0001, -5.0},
		SprintMultiplier: 3.0,
		TurnRate:         4.0 * math.Pi * 0.25,
		MaxStep:          1.0 / 120.0,
	}
}

func (p AccelerationProfile) Validate() error {
	for axis, d := range p.Deceleration {
		if !(d < 0) {
			return fmt.Errorf("%w: deceleration[%d] = %v must be negative", ErrInvalidProfile, axis, d)
		}
	}
	if p.SprintMultiplier < 0 {
		return fmt.Errorf("%w: sprint multiplier %v", ErrInvalidProfile, p.SprintMultiplier)
	}
	if p.TurnRate < 0 {
		return fmt.Errorf("%w: turn rate %v", ErrInvalidProfile, p.TurnRate)
	}
	if p.MaxStep < 0 {
		return fmt.Errorf("%w: max step %v", ErrInvalidProfile, p.MaxStep)
	}
	return nil
}
