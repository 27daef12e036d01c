package system

import (
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/input"
)

// ScriptInputSystem feeds one scripted frame per tick into Input. Once the
// script runs out the input is released.
type ScriptInputSystem struct{}

func NewScriptInputSystem() *ScriptInputSystem {
	return &ScriptInputSystem{}
}

func (s *ScriptInputSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.ScriptInputComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, sc *component.ScriptInput, in *component.Input) {
		if sc.Done() {
			in.Snapshot = input.Snapshot{}
			return
		}
		in.Snapshot = sc.Frames[sc.Cursor].Input
		sc.Cursor++
		if sc.Done() {
			w.Events().Push(ecs.Event{Entity: e, Kind: ecs.EventScriptDone})
		}
	})
}

// NextScriptDT returns the dt of the next scripted frame of the first
// scripted entity, so a headless driver can tick at the script's pace.
func NextScriptDT(w *ecs.World) (float64, bool) {
	e, ok := ecs.First(w, component.ScriptInputComponent.Kind())
	if !ok {
		return 0, false
	}
	sc, _ := ecs.Get(w, e, component.ScriptInputComponent.Kind())
	if sc.Done() {
		return 0, false
	}
	return sc.Frames[sc.Cursor].DT, true
}
