package component

import "github.com/RobeSantoro/avatar-controller/script"

// ScriptInput replays scripted frames into the entity's Input.
type ScriptInput struct {
	Frames []script.Frame
	Cursor int
}

func (s *ScriptInput) Done() bool { return s.Cursor >= len(s.Frames) }

var ScriptInputComponent = NewComponent[ScriptInput]()
