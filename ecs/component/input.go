package component

import "github.com/RobeSantoro/avatar-controller/input"

// Input stores the intents held this tick plus the debug overlay toggle.
type Input struct {
	Snapshot input.Snapshot
	Debug    bool
}

var InputComponent = NewComponent[Input]()
