package component

import "github.com/RobeSantoro/avatar-controller/anim"

// ClipLoad hands one loaded clip to the tick goroutine.
type ClipLoad struct {
	State string
	Clip  anim.Clip
	Err   error
}

type Animation struct {
	Mixer   *anim.Mixer
	Binding *anim.Binding
	// Loads is drained by the clip loader system; nil once closed.
	Loads <-chan ClipLoad
}

var AnimationComponent = NewComponent[Animation]()
