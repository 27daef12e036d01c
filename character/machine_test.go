package character

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/input"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		name  string
		from  StateID
		input input.Snapshot
		want  StateID
	}{
		{"idle_advance", Idle, input.Of(input.Advance), Walk},
		{"idle_retreat", Idle, input.Of(input.Retreat), WalkBack},
		{"idle_primary", Idle, input.Of(input.Primary), Jump},
		{"idle_secondary", Idle, input.Of(input.Secondary), Dance},
		{"idle_nothing", Idle, input.Of(), Idle},
		{"idle_turn_only", Idle, input.Of(input.TurnLeft), Idle},
		{"idle_advance_wins_over_secondary", Idle, input.Of(input.Advance, input.Secondary), Walk},

		{"walk_advance", Walk, input.Of(input.Advance), Walk},
		{"walk_sprint_advance", Walk, input.Of(input.Advance, input.Sprint), Run},
		{"walk_retreat", Walk, input.Of(input.Retreat), Idle},
		{"walk_sprint_only", Walk, input.Of(input.Sprint), Idle},
		{"walk_nothing", Walk, input.Of(), Idle},

		{"run_sprint_advance", Run, input.Of(input.Advance, input.Sprint), Run},
		{"run_sprint_released", Run, input.Of(input.Advance), Walk},
		{"run_primary", Run, input.Of(input.Advance, input.Sprint, input.Primary), JumpRun},
		{"run_retreat", Run, input.Of(input.Retreat), Idle},
		{"run_nothing", Run, input.Of(), Idle},

		{"walkback_retreat", WalkBack, input.Of(input.Retreat), WalkBack},
		{"walkback_advance", WalkBack, input.Of(input.Advance), Idle},
		{"walkback_nothing", WalkBack, input.Of(), Idle},

		{"jump_ignores_input", Jump, input.Of(input.Advance, input.Sprint), Jump},
		{"jumprun_ignores_input", JumpRun, input.Of(), JumpRun},
		{"dance_ignores_input", Dance, input.Of(input.Retreat), Dance},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			m := NewMachine(f.binding)
			if err := m.SetState(c.from); err != nil {
				t.Fatalf("SetState(%s): %v", c.from, err)
			}
			if err := m.Update(0.016, c.input); err != nil {
				t.Fatalf("Update: %v", err)
			}
			got, ok := m.Current()
			if !ok || got != c.want {
				t.Fatalf("from %s with %v: expected %s, got %s", c.from, c.input, c.want, got)
			}
		})
	}
}

func TestFinishedTransitions(t *testing.T) {
	cases := []struct {
		from StateID
		want StateID
	}{
		{Jump, Idle},
		{JumpRun, Run},
		{Dance, Idle},
	}

	for _, c := range cases {
		t.Run(c.from.String(), func(t *testing.T) {
			f := newFixture(t)
			m := NewMachine(f.binding)
			if err := m.SetState(c.from); err != nil {
				t.Fatal(err)
			}
			if !f.handles[c.from].loopOnce || !f.handles[c.from].clamp {
				t.Fatalf("one-shot clip should play once and clamp")
			}
			f.handles[c.from].finish()
			if got, _ := m.Current(); got != c.want {
				t.Fatalf("expected %s after finish, got %s", c.want, got)
			}
			if f.listenerCount() != 0 && !c.want.OneShot() {
				t.Fatalf("listener leaked after leaving %s", c.from)
			}
		})
	}
}

func TestWalkRunIdleSequence(t *testing.T) {
	f := newFixture(t)
	m := NewMachine(f.binding)
	got := recordTransitions(m)

	if err := m.SetState(Idle); err != nil {
		t.Fatal(err)
	}
	steps := []input.Snapshot{
		input.Of(input.Advance),
		input.Of(input.Advance, input.Sprint),
		input.Of(),
	}
	for _, in := range steps {
		if err := m.Update(0.016, in); err != nil {
			t.Fatal(err)
		}
	}

	want := []Transition{
		{To: Idle, Initial: true},
		{From: Idle, To: Walk},
		{From: Walk, To: Run},
		{From: Run, To: Idle},
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("transitions = %+v, want %+v", *got, want)
	}
}

func TestStaleFinishedEvent(t *testing.T) {
	f := newFixture(t)
	m := NewMachine(f.binding)
	if err := m.SetState(Idle); err != nil {
		t.Fatal(err)
	}
	if err := m.Update(0.016, input.Of(input.Primary)); err != nil {
		t.Fatal(err)
	}
	got := recordTransitions(m)

	jump := f.handles[Jump]
	if len(jump.listeners) != 1 {
		t.Fatalf("jump should hold exactly one listener, has %d", len(jump.listeners))
	}
	jump.finish()
	jump.finish()

	if len(*got) != 1 || (*got)[0] != (Transition{From: Jump, To: Idle}) {
		t.Fatalf("expected a single Jump->Idle transition, got %+v", *got)
	}
	if len(jump.listeners) != 0 {
		t.Fatalf("jump listener still subscribed after exit")
	}

	// a later visit to Jump must not be completed by the old visit's event
	if err := m.Update(0.016, input.Of(input.Primary)); err != nil {
		t.Fatal(err)
	}
	if len(jump.listeners) != 1 {
		t.Fatalf("re-entering jump should subscribe once, has %d", len(jump.listeners))
	}
}

func TestSetStateIdempotent(t *testing.T) {
	f := newFixture(t)
	m := NewMachine(f.binding)
	got := recordTransitions(m)

	for i := 0; i < 3; i++ {
		if err := m.SetState(Dance); err != nil {
			t.Fatal(err)
		}
	}
	if len(*got) != 1 {
		t.Fatalf("expected one transition, got %d", len(*got))
	}
	if f.handles[Dance].plays != 1 || len(f.handles[Dance].listeners) != 1 {
		t.Fatalf("re-setting the current state must not re-enter it")
	}
}

func TestSetStateErrors(t *testing.T) {
	t.Run("unknown", func(t *testing.T) {
		f := newFixture(t)
		m := NewMachine(f.binding)
		if err := m.SetState(StateID(42)); !errors.Is(err, ErrUnknownState) {
			t.Fatalf("expected ErrUnknownState, got %v", err)
		}
		if _, err := ParseStateID("crouch"); !errors.Is(err, ErrUnknownState) {
			t.Fatalf("expected ErrUnknownState from parse, got %v", err)
		}
	})

	t.Run("not_ready", func(t *testing.T) {
		m := NewMachine(anim.NewBinding(ClipNames()...))
		if err := m.SetState(Idle); !errors.Is(err, ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
		if _, ok := m.Current(); ok {
			t.Fatalf("failed SetState must not leave a current state")
		}
	})
}

func TestCrossFadeDurations(t *testing.T) {
	cases := []struct {
		path []StateID
		want float64
	}{
		{[]StateID{Idle, Walk}, 0.5},
		{[]StateID{Walk, Idle}, 0.5},
		{[]StateID{Walk, Run}, 0.5},
		{[]StateID{Idle, WalkBack}, 0.5},
		{[]StateID{Idle, Jump}, 0.1},
		{[]StateID{Jump, Idle}, 0.1},
		{[]StateID{Run, JumpRun}, 0.1},
		{[]StateID{JumpRun, Run}, 0.1},
		{[]StateID{Idle, Dance}, 0.2},
		{[]StateID{Dance, Idle}, 0.2},
	}

	for _, c := range cases {
		from, to := c.path[0], c.path[1]
		t.Run(from.String()+"_"+to.String(), func(t *testing.T) {
			f := newFixture(t)
			m := NewMachine(f.binding)
			for _, id := range c.path {
				if err := m.SetState(id); err != nil {
					t.Fatal(err)
				}
			}
			h := f.handles[to]
			if h.fadeFrom != f.handles[from] {
				t.Fatalf("expected crossfade from %s", from)
			}
			if h.fadeDuration != c.want || !h.fadeWarp {
				t.Fatalf("fade = %v warp=%v, want %v warp", h.fadeDuration, h.fadeWarp, c.want)
			}
		})
	}
}

func TestFirstStatePlaysWithoutBlend(t *testing.T) {
	f := newFixture(t)
	m := NewMachine(f.binding)
	if err := m.SetState(Idle); err != nil {
		t.Fatal(err)
	}
	h := f.handles[Idle]
	if h.plays != 1 || h.fadeFrom != nil {
		t.Fatalf("first state should play directly, plays=%d fadeFrom=%v", h.plays, h.fadeFrom)
	}
}

func TestFootPhaseSeeding(t *testing.T) {
	t.Run("walk_to_run", func(t *testing.T) {
		f := newFixture(t)
		m := NewMachine(f.binding)
		if err := m.SetState(Walk); err != nil {
			t.Fatal(err)
		}
		f.handles[Walk].time = 0.4
		if err := m.SetState(Run); err != nil {
			t.Fatal(err)
		}
		if got := f.handles[Run].time; math.Abs(got-0.2) > 1e-12 {
			t.Fatalf("expected run time 0.2, got %v", got)
		}
	})

	t.Run("run_to_walk", func(t *testing.T) {
		f := newFixture(t)
		m := NewMachine(f.binding)
		if err := m.SetState(Run); err != nil {
			t.Fatal(err)
		}
		f.handles[Run].time = 0.2
		f.handles[Walk].time = 0.9
		if err := m.SetState(Walk); err != nil {
			t.Fatal(err)
		}
		if got := f.handles[Walk].time; math.Abs(got-0.4) > 1e-12 {
			t.Fatalf("expected walk time 0.4, got %v", got)
		}
	})

	t.Run("other_pairs_restart", func(t *testing.T) {
		f := newFixture(t)
		m := NewMachine(f.binding)
		if err := m.SetState(Idle); err != nil {
			t.Fatal(err)
		}
		walk := f.handles[Walk]
		walk.time, walk.weight, walk.timeScale = 0.7, 0.3, 2
		if err := m.SetState(Walk); err != nil {
			t.Fatal(err)
		}
		if walk.time != 0 || walk.weight != 1 || walk.timeScale != 1 {
			t.Fatalf("expected reset clip, got time=%v weight=%v scale=%v", walk.time, walk.weight, walk.timeScale)
		}
	})
}

func TestExactlyOneStateUnderRandomInput(t *testing.T) {
	f := newFixture(t)
	m := NewMachine(f.binding)
	if err := m.SetState(Idle); err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(7))
	intents := input.Intents()
	for i := 0; i < 5000; i++ {
		var in input.Snapshot
		for _, it := range intents {
			in.Set(it, rng.Intn(3) == 0)
		}
		if err := m.Update(0.016, in); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		// deliver a finished event to a random clip now and then
		if rng.Intn(10) == 0 {
			f.handles[StateID(rng.Intn(int(stateCount)))].finish()
		}

		cur, ok := m.Current()
		if !ok || !cur.Valid() {
			t.Fatalf("step %d: no valid current state", i)
		}
		want := 0
		if cur.OneShot() {
			want = 1
		}
		if n := f.listenerCount(); n != want {
			t.Fatalf("step %d: state %s has %d listeners, want %d", i, cur, n, want)
		}
	}
}
