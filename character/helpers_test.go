package character

import (
	"testing"

	"github.com/RobeSantoro/avatar-controller/anim"
)

// fakeHandle records what the states ask of a clip.
type fakeHandle struct {
	name      string
	duration  float64
	time      float64
	timeScale float64
	weight    float64
	loopOnce  bool
	clamp     bool
	plays     int

	fadeFrom     *fakeHandle
	fadeDuration float64
	fadeWarp     bool

	next      anim.Token
	listeners map[anim.Token]func()
}

func newFakeHandle(name string, duration float64) *fakeHandle {
	return &fakeHandle{
		name:      name,
		duration:  duration,
		timeScale: 1,
		weight:    1,
		listeners: map[anim.Token]func(){},
	}
}

func (h *fakeHandle) Play()                        { h.plays++ }
func (h *fakeHandle) SetLoopOnce()                 { h.loopOnce = true }
func (h *fakeHandle) ClampWhenFinished(clamp bool) { h.clamp = clamp }
func (h *fakeHandle) Time() float64                { return h.time }
func (h *fakeHandle) SetTime(seconds float64)      { h.time = seconds }
func (h *fakeHandle) SetTimeScale(scale float64)   { h.timeScale = scale }
func (h *fakeHandle) SetWeight(weight float64)     { h.weight = weight }
func (h *fakeHandle) ClipDuration() float64        { return h.duration }

func (h *fakeHandle) CrossFadeFrom(prev anim.Handle, duration float64, warp bool) {
	h.fadeFrom, _ = prev.(*fakeHandle)
	h.fadeDuration = duration
	h.fadeWarp = warp
}

func (h *fakeHandle) SubscribeFinished(fn func()) anim.Token {
	h.next++
	h.listeners[h.next] = fn
	return h.next
}

func (h *fakeHandle) UnsubscribeFinished(tok anim.Token) {
	delete(h.listeners, tok)
}

// finish delivers a finished event to whoever is subscribed right now.
func (h *fakeHandle) finish() {
	fns := make([]func(), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

type fixture struct {
	binding *anim.Binding
	handles map[StateID]*fakeHandle
}

var clipDurations = map[StateID]float64{
	Idle:     2.0,
	Walk:     1.0,
	Run:      0.5,
	WalkBack: 1.2,
	Jump:     0.8,
	JumpRun:  0.7,
	Dance:    3.0,
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		binding: anim.NewBinding(ClipNames()...),
		handles: map[StateID]*fakeHandle{},
	}
	for _, id := range StateIDs() {
		h := newFakeHandle(id.String(), clipDurations[id])
		f.handles[id] = h
		if err := f.binding.Bind(id.String(), h); err != nil {
			t.Fatalf("bind %s: %v", id, err)
		}
	}
	return f
}

func (f *fixture) listenerCount() int {
	n := 0
	for _, h := range f.handles {
		n += len(h.listeners)
	}
	return n
}

// recordTransitions collects every transition the machine reports.
func recordTransitions(m *Machine) *[]Transition {
	var out []Transition
	m.OnTransition(func(t Transition) { out = append(out, t) })
	return &out
}
