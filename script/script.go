// Package script compiles tengo input scripts into a timeline of input
// frames for headless runs.
//
// A script either calls the sim helpers:
//
//	sim.hold(1.5, "advance", "sprint")
//	sim.wait(0.5)
//	sim.tap("primary")
//
// or assigns a global frames array of {dt, keys, repeat} maps. Both forms may
// be mixed; helper frames come first.
package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/RobeSantoro/avatar-controller/input"
)

// DefaultStep is the tick length used by the sim helpers.
const DefaultStep = 1.0 / 60.0

var ErrBadFrame = errors.New("script: bad frame")

// Frame is one tick of scripted input.
type Frame struct {
	DT    float64
	Input input.Snapshot
}

// Duration sums the dt of frames.
func Duration(frames []Frame) float64 {
	total := 0.0
	for _, f := range frames {
		total += f.DT
	}
	return total
}

type builder struct {
	step   float64
	frames []Frame
}

// Load compiles and runs src, returning its frames. step is the tick length
// for the sim helpers; zero selects DefaultStep.
func Load(ctx context.Context, name string, src []byte, step float64) ([]Frame, error) {
	if step <= 0 {
		step = DefaultStep
	}
	b := &builder{step: step}

	s := tengo.NewScript(src)
	if err := s.Add("sim", b.module()); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}

	if compiled.IsDefined("frames") {
		decl, err := decodeFrames(compiled.Get("frames").Array())
		if err != nil {
			return nil, fmt.Errorf("script: %s: %w", name, err)
		}
		b.frames = append(b.frames, decl...)
	}
	return b.frames, nil
}

func (b *builder) module() *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"step": &tengo.Float{Value: b.step},
		"hold": &tengo.UserFunction{Name: "hold", Value: b.hold},
		"wait": &tengo.UserFunction{Name: "wait", Value: b.wait},
		"tap":  &tengo.UserFunction{Name: "tap", Value: b.tap},
	}}
}

func (b *builder) hold(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	seconds, ok := tengo.ToFloat64(args[0])
	if !ok {
		return nil, tengo.ErrInvalidArgumentType{Name: "seconds", Expected: "float", Found: args[0].TypeName()}
	}
	in, err := snapshotOf(args[1:])
	if err != nil {
		return nil, err
	}
	b.repeat(in, seconds)
	return tengo.UndefinedValue, nil
}

func (b *builder) wait(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	return b.hold(args[0])
}

func (b *builder) tap(args ...tengo.Object) (tengo.Object, error) {
	in, err := snapshotOf(args)
	if err != nil {
		return nil, err
	}
	b.frames = append(b.frames, Frame{DT: b.step, Input: in})
	return tengo.UndefinedValue, nil
}

// repeat appends enough ticks to cover seconds, at least one.
func (b *builder) repeat(in input.Snapshot, seconds float64) {
	n := max(int(math.Round(seconds/b.step)), 1)
	for range n {
		b.frames = append(b.frames, Frame{DT: b.step, Input: in})
	}
}

func snapshotOf(args []tengo.Object) (input.Snapshot, error) {
	names := make([]string, 0, len(args))
	for _, a := range args {
		s, ok := tengo.ToString(a)
		if !ok {
			return input.Snapshot{}, tengo.ErrInvalidArgumentType{Name: "intent", Expected: "string", Found: a.TypeName()}
		}
		names = append(names, s)
	}
	return input.FromNames(names...)
}

func decodeFrames(raw []any) ([]Frame, error) {
	var out []Frame
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w %d: want map, got %T", ErrBadFrame, i, item)
		}
		dt, ok := number(m["dt"])
		if !ok || dt <= 0 {
			return nil, fmt.Errorf("%w %d: dt must be a positive number", ErrBadFrame, i)
		}
		var names []string
		if keys, ok := m["keys"].([]any); ok {
			for _, k := range keys {
				s, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("%w %d: key %v is not a string", ErrBadFrame, i, k)
				}
				names = append(names, strings.TrimSpace(s))
			}
		}
		in, err := input.FromNames(names...)
		if err != nil {
			return nil, fmt.Errorf("%w %d: %w", ErrBadFrame, i, err)
		}
		n := 1
		if r, ok := number(m["repeat"]); ok && r > 1 {
			n = int(r)
		}
		for range n {
			out = append(out, Frame{DT: dt, Input: in})
		}
	}
	return out, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
