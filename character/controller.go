// Package character implements the locomotion core: a damped-velocity motion
// model, the seven-state animation state machine that gates it, and the
// controller composing both behind a read-only position/rotation accessor.
package character

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/input"
)

// Controller drives one character. It does nothing until every clip in
// ClipNames is bound, then enters Idle on its first ready tick.
type Controller struct {
	log     logrus.FieldLogger
	binding *anim.Binding
	machine *Machine
	motion  *MotionModel
	started bool
}

func NewController(binding *anim.Binding, profile AccelerationProfile, log logrus.FieldLogger) *Controller {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	c := &Controller{
		log:     log,
		binding: binding,
		machine: NewMachine(binding),
		motion:  NewMotionModel(profile),
	}
	c.machine.OnTransition(func(t Transition) {
		if t.Initial {
			c.log.WithField("state", t.To).Debug("locomotion started")
			return
		}
		c.log.WithFields(logrus.Fields{"from": t.From, "state": t.To}).Debug("locomotion transition")
	})
	return c
}

// Ready reports whether the controller has started driving the character.
func (c *Controller) Ready() bool { return c.started }

func (c *Controller) Machine() *Machine      { return c.machine }
func (c *Controller) Motion() *MotionModel   { return c.motion }
func (c *Controller) Binding() *anim.Binding { return c.binding }

// State returns the active locomotion state; ok is false until ready.
func (c *Controller) State() (StateID, bool) { return c.machine.Current() }

func (c *Controller) Position() mgl64.Vec3 { return c.motion.Position() }

// Rotation returns the character's yaw. Before the character is ready it is
// the identity rotation.
func (c *Controller) Rotation() mgl64.Quat {
	if !c.started {
		return mgl64.QuatIdent()
	}
	return c.motion.Rotation()
}

func (c *Controller) Velocity() mgl64.Vec3 { return c.motion.Velocity() }

// SetProfile replaces the motion tuning between ticks.
func (c *Controller) SetProfile(p AccelerationProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.motion.SetProfile(p)
	return nil
}

// Update advances the character by dt seconds: state machine first, then
// motion gated by the state the machine settled on.
func (c *Controller) Update(dt float64, in input.Snapshot) error {
	if !c.started {
		if !c.binding.Ready() {
			return nil
		}
		if err := c.machine.SetState(Idle); err != nil {
			c.log.WithError(err).Error("enter initial state")
			return err
		}
		c.started = true
	}

	if err := c.machine.Update(dt, in); err != nil {
		c.log.WithError(err).Error("locomotion update")
		return err
	}
	current, _ := c.machine.Current()
	c.motion.Update(dt, in, current)
	return nil
}
