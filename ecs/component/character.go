package component

import "github.com/RobeSantoro/avatar-controller/character"

type Character struct {
	Controller *character.Controller
	// Ready is set by the character system on the first tick the
	// controller runs.
	Ready bool
}

var CharacterComponent = NewComponent[Character]()
