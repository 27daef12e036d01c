package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/camera"
	"github.com/RobeSantoro/avatar-controller/character"
)

const (
	CharacterFile  = "character.yaml"
	CameraFile     = "camera.yaml"
	AnimationsFile = "animations.yaml"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// PlayerTarget names the tagged player as a camera target. An empty target
// means the same.
const PlayerTarget = "player"

// KnownCameraTarget reports whether a camera can follow name.
func KnownCameraTarget(name string) bool {
	return name == "" || name == PlayerTarget
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// CharacterSpec tunes the motion model. Omitted fields keep their defaults.
type CharacterSpec struct {
	Name             string     `yaml:"name"`
	Acceleration     *Vec3Spec  `yaml:"acceleration"`
	Deceleration     *Vec3Spec  `yaml:"deceleration"`
	SprintMultiplier *float64   `yaml:"sprint_multiplier"`
	TurnRateDeg      *float64   `yaml:"turn_rate_deg"`
	MaxStep          *float64   `yaml:"max_step"`
	Color            *YAMLColor `yaml:"color"`
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](CharacterFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *CharacterSpec) Profile() (character.AccelerationProfile, error) {
	p := character.DefaultProfile()
	if s == nil {
		return p, nil
	}
	if s.Acceleration != nil {
		p.Acceleration = s.Acceleration.Vec3()
	}
	if s.Deceleration != nil {
		p.Deceleration = s.Deceleration.Vec3()
	}
	if s.SprintMultiplier != nil {
		p.SprintMultiplier = *s.SprintMultiplier
	}
	if s.TurnRateDeg != nil {
		p.TurnRate = mgl64.DegToRad(*s.TurnRateDeg)
	}
	if s.MaxStep != nil {
		p.MaxStep = *s.MaxStep
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("prefabs: %s: %w", CharacterFile, err)
	}
	return p, nil
}

// BodyColor returns the configured render colour, or fallback.
func (s *CharacterSpec) BodyColor(fallback color.Color) color.Color {
	if s == nil || s.Color == nil || s.Color.Color == nil {
		return fallback
	}
	return s.Color.Color
}

type CameraSpec struct {
	Name      string    `yaml:"name"`
	Target    string    `yaml:"target"`
	Offset    *Vec3Spec `yaml:"offset"`
	LookAt    *Vec3Spec `yaml:"look_at"`
	Decay     *float64  `yaml:"decay"`
	UseLookAt *bool     `yaml:"use_look_at"`
	// SnapOnReady jumps the camera to its ideal pose on the first ready
	// tick instead of smoothing in from the origin.
	SnapOnReady *bool `yaml:"snap_on_ready"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *CameraSpec) Settings() (camera.Settings, error) {
	c := camera.DefaultSettings()
	if s == nil {
		return c, nil
	}
	if s.Offset != nil {
		c.Offset = s.Offset.Vec3()
	}
	if s.LookAt != nil {
		c.LookAt = s.LookAt.Vec3()
	}
	if s.Decay != nil {
		c.Decay = *s.Decay
	}
	if s.UseLookAt != nil {
		c.UseLookAt = *s.UseLookAt
	}
	if s.SnapOnReady != nil {
		c.SnapOnReady = *s.SnapOnReady
	}
	if !KnownCameraTarget(s.Target) {
		return c, fmt.Errorf("%w: %s: unknown target %q", ErrInvalidSpec, CameraFile, s.Target)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("prefabs: %s: %w", CameraFile, err)
	}
	return c, nil
}

// ClipSpec binds a locomotion state to the clip that animates it.
type ClipSpec struct {
	State    string  `yaml:"state"`
	Clip     string  `yaml:"clip"`
	Duration float64 `yaml:"duration"`
}

type AnimationSetSpec struct {
	Name string `yaml:"name"`
	// LatencyMS delays each clip hand-off to mimic streaming assets.
	LatencyMS int        `yaml:"latency_ms"`
	Clips     []ClipSpec `yaml:"clips"`
}

func LoadAnimationSetSpec() (*AnimationSetSpec, error) {
	spec, err := LoadSpec[AnimationSetSpec](AnimationsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *AnimationSetSpec) Latency() time.Duration {
	if s == nil || s.LatencyMS <= 0 {
		return 0
	}
	return time.Duration(s.LatencyMS) * time.Millisecond
}

// Validate checks that every locomotion state has exactly one clip with a
// positive duration.
func (s *AnimationSetSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: %s: no animation set", ErrInvalidSpec, AnimationsFile)
	}
	seen := make(map[character.StateID]bool, len(s.Clips))
	for _, c := range s.Clips {
		id, err := character.ParseStateID(c.State)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidSpec, AnimationsFile, err)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s: state %s listed twice", ErrInvalidSpec, AnimationsFile, id)
		}
		if !(c.Duration > 0) {
			return fmt.Errorf("%w: %s: clip %q duration %v", ErrInvalidSpec, AnimationsFile, c.Clip, c.Duration)
		}
		seen[id] = true
	}
	for _, id := range character.StateIDs() {
		if !seen[id] {
			return fmt.Errorf("%w: %s: no clip for state %s", ErrInvalidSpec, AnimationsFile, id)
		}
	}
	return nil
}

// AnimClip returns the mixer clip for c. An empty clip name falls back to
// the state name.
func (c ClipSpec) AnimClip() anim.Clip {
	name := strings.TrimSpace(c.Clip)
	if name == "" {
		name = c.State
	}
	return anim.Clip{Name: name, Duration: c.Duration}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %s: %w", value.Value, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	c.Color = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	return nil
}
