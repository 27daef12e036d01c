package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/input"
)

const stickDeadzone = 0.35

// Keymap lists the keys that assert each intent.
type Keymap map[input.Intent][]ebiten.Key

func DefaultKeymap() Keymap {
	return Keymap{
		input.Advance:     {ebiten.KeyW, ebiten.KeyArrowUp},
		input.Retreat:     {ebiten.KeyS, ebiten.KeyArrowDown},
		input.TurnLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
		input.TurnRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
		input.Sprint:      {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
		input.Primary:     {ebiten.KeySpace},
		input.Secondary:   {ebiten.KeyF},
		input.DebugToggle: {ebiten.KeyV},
	}
}

// Snapshot resolves the keymap against pressed.
func (k Keymap) Snapshot(pressed func(ebiten.Key) bool) input.Snapshot {
	var s input.Snapshot
	for intent, keys := range k {
		for _, key := range keys {
			if pressed(key) {
				s.Set(intent, true)
				break
			}
		}
	}
	return s
}

// InputSystem polls keyboard and the first gamepad into every Input
// component. The debug overlay flips on the press of the debug key, not
// while it is held.
type InputSystem struct {
	keys Keymap
}

func NewInputSystem(keys Keymap) *InputSystem {
	if keys == nil {
		keys = DefaultKeymap()
	}
	return &InputSystem{keys: keys}
}

func (s *InputSystem) Update(w *ecs.World, dt float64) {
	snap := s.keys.Snapshot(ebiten.IsKeyPressed)
	toggle := false
	for _, key := range s.keys[input.DebugToggle] {
		if inpututil.IsKeyJustPressed(key) {
			toggle = true
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			gamepadIntents(id, &snap)
			toggle = toggle || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Snapshot = snap
		if toggle {
			in.Debug = !in.Debug
		}
	})
}

func gamepadIntents(id ebiten.GamepadID, snap *input.Snapshot) {
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	pressed := func(b ebiten.StandardGamepadButton) bool {
		return ebiten.IsStandardGamepadButtonPressed(id, b)
	}

	if y < -stickDeadzone || pressed(ebiten.StandardGamepadButtonLeftTop) {
		snap.Set(input.Advance, true)
	}
	if y > stickDeadzone || pressed(ebiten.StandardGamepadButtonLeftBottom) {
		snap.Set(input.Retreat, true)
	}
	if x < -stickDeadzone || pressed(ebiten.StandardGamepadButtonLeftLeft) {
		snap.Set(input.TurnLeft, true)
	}
	if x > stickDeadzone || pressed(ebiten.StandardGamepadButtonLeftRight) {
		snap.Set(input.TurnRight, true)
	}
	if pressed(ebiten.StandardGamepadButtonFrontBottomRight) || pressed(ebiten.StandardGamepadButtonLeftStick) {
		snap.Set(input.Sprint, true)
	}
	if pressed(ebiten.StandardGamepadButtonRightBottom) {
		snap.Set(input.Primary, true)
	}
	if pressed(ebiten.StandardGamepadButtonRightLeft) {
		snap.Set(input.Secondary, true)
	}
}
