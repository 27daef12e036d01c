package character

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/input"
)

func TestControllerWaitsForClips(t *testing.T) {
	binding := anim.NewBinding(ClipNames()...)
	c := NewController(binding, DefaultProfile(), nil)

	for i := 0; i < 10; i++ {
		if err := c.Update(0.1, input.Of(input.Advance, input.TurnLeft)); err != nil {
			t.Fatalf("update before ready: %v", err)
		}
	}
	if c.Ready() {
		t.Fatalf("controller should not be ready without clips")
	}
	if _, ok := c.State(); ok {
		t.Fatalf("no state should be active before ready")
	}
	if c.Rotation() != mgl64.QuatIdent() {
		t.Fatalf("rotation before ready = %v, want identity", c.Rotation())
	}
	if c.Position() != (mgl64.Vec3{}) {
		t.Fatalf("position before ready = %v, want origin", c.Position())
	}
}

func TestControllerFirstReadyTick(t *testing.T) {
	f := newFixture(t)
	c := NewController(f.binding, DefaultProfile(), nil)
	got := recordTransitions(c.Machine())

	if err := c.Update(0.016, input.Of(input.Advance)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !c.Ready() {
		t.Fatalf("controller should be ready once every clip is bound")
	}
	want := []Transition{{To: Idle, Initial: true}, {From: Idle, To: Walk}}
	if len(*got) != len(want) {
		t.Fatalf("transitions = %+v, want %+v", *got, want)
	}
	for i := range want {
		if (*got)[i] != want[i] {
			t.Fatalf("transition %d = %+v, want %+v", i, (*got)[i], want[i])
		}
	}
	if c.Velocity()[2] <= 0 {
		t.Fatalf("advance on the first ready tick should accelerate, got %v", c.Velocity())
	}
}

func TestControllerDanceHoldsStill(t *testing.T) {
	f := newFixture(t)
	c := NewController(f.binding, DefaultProfile(), nil)

	if err := c.Update(0.016, input.Of(input.Secondary)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s, _ := c.State(); s != Dance {
		t.Fatalf("state = %v, want dance", s)
	}
	for i := 0; i < 30; i++ {
		if err := c.Update(0.016, input.Of(input.Advance, input.Sprint)); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if s, _ := c.State(); s != Dance {
		t.Fatalf("advance must not interrupt the dance, state = %v", s)
	}
	if c.Velocity() != (mgl64.Vec3{}) || c.Position() != (mgl64.Vec3{}) {
		t.Fatalf("dancing character moved: v=%v p=%v", c.Velocity(), c.Position())
	}
}

func TestControllerJumpWithMixer(t *testing.T) {
	mixer := anim.NewMixer()
	binding := anim.NewBinding(ClipNames()...)
	for _, id := range StateIDs() {
		a := mixer.ClipAction(anim.Clip{Name: id.String(), Duration: clipDurations[id]})
		if err := binding.Bind(id.String(), a); err != nil {
			t.Fatalf("bind %s: %v", id, err)
		}
	}
	c := NewController(binding, DefaultProfile(), nil)
	got := recordTransitions(c.Machine())

	const dt = 1.0 / 60
	if err := c.Update(dt, input.Of(input.Primary)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if s, _ := c.State(); s != Jump {
		t.Fatalf("state = %v, want jump", s)
	}

	for i := 0; i < 180; i++ {
		mixer.Update(dt)
		if err := c.Update(dt, input.Of()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	landed := 0
	for _, tr := range *got {
		if tr.From == Jump && tr.To == Idle {
			landed++
		}
	}
	if landed != 1 {
		t.Fatalf("jump should land exactly once, transitions = %+v", *got)
	}
	if s, _ := c.State(); s != Idle {
		t.Fatalf("state = %v, want idle", s)
	}
	jump, _ := mixer.Action(Jump.String())
	if jump.Listeners() != 0 {
		t.Fatalf("jump still has %d finished listeners after landing", jump.Listeners())
	}
}

func TestControllerLogsTransitions(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f := newFixture(t)
	c := NewController(f.binding, DefaultProfile(), log)
	if err := c.Update(0.016, input.Of(input.Retreat)); err != nil {
		t.Fatalf("update: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	if got := entries[0].Data["state"]; got != Idle {
		t.Fatalf("first entry state = %v, want idle", got)
	}
	last := hook.LastEntry()
	if last.Data["from"] != Idle || last.Data["state"] != WalkBack {
		t.Fatalf("last entry fields = %v", last.Data)
	}
}

func TestControllerSetProfile(t *testing.T) {
	c := NewController(newFixture(t).binding, DefaultProfile(), nil)
	bad := DefaultProfile()
	bad.Deceleration = mgl64.Vec3{}
	if err := c.SetProfile(bad); err == nil {
		t.Fatalf("invalid profile accepted")
	}
	good := DefaultProfile()
	good.SprintMultiplier = 2
	if err := c.SetProfile(good); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if c.Motion().Profile().SprintMultiplier != 2 {
		t.Fatalf("profile not applied")
	}
}
