package anim

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestActionLoopWraps(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "walk", Duration: 1.0})
	a.Play()

	m.Update(0.75)
	m.Update(0.5)
	if !near(a.Time(), 0.25) {
		t.Fatalf("expected looped time 0.25, got %v", a.Time())
	}
	if !a.Running() {
		t.Fatalf("looping action should keep running")
	}
}

func TestActionPlayOnce(t *testing.T) {
	cases := []struct {
		name        string
		clamp       bool
		wantRunning bool
		wantPaused  bool
	}{
		{"clamped", true, true, true},
		{"unclamped", false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := NewMixer()
			a := m.ClipAction(Clip{Name: "jump", Duration: 0.5})
			a.SetLoopOnce()
			a.ClampWhenFinished(c.clamp)
			fired := 0
			a.SubscribeFinished(func() { fired++ })
			a.Play()

			m.Update(0.3)
			if fired != 0 {
				t.Fatalf("finished fired early")
			}
			m.Update(0.3)
			m.Update(0.3)
			if fired != 1 {
				t.Fatalf("expected exactly one finished event, got %d", fired)
			}
			if !near(a.Time(), 0.5) {
				t.Fatalf("expected time clamped to 0.5, got %v", a.Time())
			}
			if a.Running() != c.wantRunning || a.Paused() != c.wantPaused {
				t.Fatalf("running=%v paused=%v, want %v/%v", a.Running(), a.Paused(), c.wantRunning, c.wantPaused)
			}
		})
	}
}

func TestActionReplayFiresAgain(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "jump", Duration: 0.2})
	a.SetLoopOnce()
	a.ClampWhenFinished(true)
	fired := 0
	a.SubscribeFinished(func() { fired++ })

	a.Play()
	m.Update(0.5)
	a.SetTime(0)
	a.Play()
	m.Update(0.5)
	if fired != 2 {
		t.Fatalf("expected a finished event per play, got %d", fired)
	}
}

func TestUnsubscribeFinished(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "dance", Duration: 0.1})
	a.SetLoopOnce()

	var calls []string
	var second Token
	a.SubscribeFinished(func() {
		calls = append(calls, "first")
		a.UnsubscribeFinished(second)
	})
	second = a.SubscribeFinished(func() { calls = append(calls, "second") })
	a.Play()
	m.Update(0.2)

	if len(calls) != 1 || calls[0] != "first" {
		t.Fatalf("listener removed during dispatch must not run, got %v", calls)
	}
	if a.Listeners() != 1 {
		t.Fatalf("expected 1 listener left, got %d", a.Listeners())
	}
}

func TestCrossFadeWeightsAndWarp(t *testing.T) {
	m := NewMixer()
	walk := m.ClipAction(Clip{Name: "walk", Duration: 1.0})
	run := m.ClipAction(Clip{Name: "run", Duration: 0.5})
	walk.Play()

	run.CrossFadeFrom(walk, 0.5, true)
	run.Play()
	if run.Weight() != 0 {
		t.Fatalf("fade-in should start at weight 0, got %v", run.Weight())
	}
	if !near(run.TimeScale(), 0.5) {
		t.Fatalf("incoming warp should start at 0.5, got %v", run.TimeScale())
	}

	m.Update(0.25)
	if !near(run.Weight(), 0.5) || !near(walk.Weight(), 0.5) {
		t.Fatalf("mid fade weights run=%v walk=%v", run.Weight(), walk.Weight())
	}
	if !near(walk.TimeScale(), 1.5) {
		t.Fatalf("outgoing warp mid value expected 1.5, got %v", walk.TimeScale())
	}

	m.Update(0.25)
	if !near(run.Weight(), 1) || !near(run.TimeScale(), 1) {
		t.Fatalf("fade-in should end at weight 1 scale 1, got %v/%v", run.Weight(), run.TimeScale())
	}
	if walk.Running() {
		t.Fatalf("faded out action should stop")
	}
}

func TestClipActionReusesByName(t *testing.T) {
	m := NewMixer()
	a := m.ClipAction(Clip{Name: "idle", Duration: 2})
	b := m.ClipAction(Clip{Name: "idle", Duration: 3})
	if a != b {
		t.Fatalf("expected the same action for the same clip name")
	}
	if len(m.Actions()) != 1 {
		t.Fatalf("expected one action, got %d", len(m.Actions()))
	}
}
