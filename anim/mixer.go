package anim

import (
	"math"

	"github.com/RobeSantoro/avatar-controller/common"
)

// Clip describes one animation clip by name and length in seconds.
type Clip struct {
	Name     string
	Duration float64
}

// ramp interpolates a value linearly over a fixed duration.
type ramp struct {
	from, to float64
	duration float64
	elapsed  float64
	active   bool
}

func (r *ramp) start(from, to, duration float64) {
	*r = ramp{from: from, to: to, duration: duration, active: duration > 0}
}

// advance moves the ramp forward by dt and returns the current value and
// whether the ramp completed during this call.
func (r *ramp) advance(dt float64) (float64, bool) {
	r.elapsed += dt
	if r.elapsed >= r.duration {
		r.active = false
		return r.to, true
	}
	return common.Lerp(r.from, r.to, r.elapsed/r.duration), false
}

type listener struct {
	tok Token
	fn  func()
}

// Action plays one clip on a Mixer. It implements Handle.
type Action struct {
	mixer *Mixer
	clip  Clip

	time      float64
	timeScale float64
	weight    float64
	loopOnce  bool
	clamp     bool

	running bool
	// paused holds a clamped play-once clip on its last frame.
	paused bool
	// done is set once the finished event fired for the current play.
	done bool

	fade ramp
	warp ramp

	listeners []listener
}

var _ Handle = (*Action)(nil)

func (a *Action) Clip() Clip         { return a.clip }
func (a *Action) Time() float64      { return a.time }
func (a *Action) Weight() float64    { return a.weight }
func (a *Action) TimeScale() float64 { return a.timeScale }
func (a *Action) Running() bool      { return a.running }
func (a *Action) Paused() bool       { return a.paused }

func (a *Action) ClipDuration() float64 { return a.clip.Duration }

func (a *Action) Play() {
	a.running = true
	a.paused = false
	a.done = false
}

// Stop halts playback and cancels any fade or warp in progress.
func (a *Action) Stop() {
	a.running = false
	a.paused = false
	a.fade = ramp{}
	a.warp = ramp{}
}

func (a *Action) SetLoopOnce()                 { a.loopOnce = true }
func (a *Action) SetLoopRepeat()               { a.loopOnce = false }
func (a *Action) ClampWhenFinished(clamp bool) { a.clamp = clamp }
func (a *Action) SetTime(seconds float64)      { a.time = seconds }

func (a *Action) SetTimeScale(scale float64) {
	a.warp = ramp{}
	a.timeScale = scale
}

func (a *Action) SetWeight(weight float64) {
	a.fade = ramp{}
	a.weight = weight
}

func (a *Action) CrossFadeFrom(prev Handle, duration float64, warp bool) {
	if from, ok := prev.(*Action); ok && from != nil && from != a {
		from.fade.start(from.weight, 0, duration)
		if duration <= 0 {
			from.weight = 0
			from.running = false
		}
		if warp && from.clip.Duration > 0 && a.clip.Duration > 0 {
			from.warp.start(1, from.clip.Duration/a.clip.Duration, duration)
			a.warp.start(a.clip.Duration/from.clip.Duration, 1, duration)
			if a.warp.active {
				a.timeScale = a.warp.from
			}
		}
	}
	a.fade.start(0, 1, duration)
	if a.fade.active {
		a.weight = 0
	} else {
		a.weight = 1
	}
}

func (a *Action) SubscribeFinished(fn func()) Token {
	a.mixer.nextToken++
	tok := a.mixer.nextToken
	a.listeners = append(a.listeners, listener{tok: tok, fn: fn})
	return tok
}

func (a *Action) UnsubscribeFinished(tok Token) {
	for i, l := range a.listeners {
		if l.tok == tok {
			a.listeners = append(a.listeners[:i], a.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of finished listeners currently subscribed.
func (a *Action) Listeners() int { return len(a.listeners) }

func (a *Action) subscribed(tok Token) bool {
	for _, l := range a.listeners {
		if l.tok == tok {
			return true
		}
	}
	return false
}

// advance steps the action by dt and reports whether it finished a play-once
// pass during this step.
func (a *Action) advance(dt float64) bool {
	if !a.running {
		return false
	}
	if a.fade.active {
		w, complete := a.fade.advance(dt)
		a.weight = w
		if complete && w == 0 {
			a.running = false
			a.warp = ramp{}
			return false
		}
	}
	if a.warp.active {
		a.timeScale, _ = a.warp.advance(dt)
	}
	if a.paused {
		return false
	}

	a.time += dt * a.timeScale
	d := a.clip.Duration
	if d <= 0 {
		return false
	}
	if !a.loopOnce {
		a.time = math.Mod(a.time, d)
		if a.time < 0 {
			a.time += d
		}
		return false
	}
	if a.time < d && a.time >= 0 {
		return false
	}
	a.time = common.Clamp(a.time, 0, d)
	if a.clamp {
		a.paused = true
	} else {
		a.running = false
	}
	if a.done {
		return false
	}
	a.done = true
	return true
}

func (a *Action) dispatchFinished() {
	subs := append([]listener(nil), a.listeners...)
	for _, l := range subs {
		// a listener may unsubscribe another one while we dispatch
		if !a.subscribed(l.tok) {
			continue
		}
		l.fn()
	}
}

// Mixer owns the actions of one character and advances them together.
type Mixer struct {
	actions   []*Action
	byName    map[string]*Action
	nextToken Token
}

func NewMixer() *Mixer {
	return &Mixer{byName: make(map[string]*Action)}
}

// ClipAction returns the action playing clip, creating it on first use.
func (m *Mixer) ClipAction(clip Clip) *Action {
	if a, ok := m.byName[clip.Name]; ok {
		return a
	}
	a := &Action{mixer: m, clip: clip, timeScale: 1, weight: 1}
	m.actions = append(m.actions, a)
	m.byName[clip.Name] = a
	return a
}

func (m *Mixer) Action(name string) (*Action, bool) {
	a, ok := m.byName[name]
	return a, ok
}

func (m *Mixer) Actions() []*Action {
	return append([]*Action(nil), m.actions...)
}

// Update advances every action by dt. Finished events are delivered after all
// actions have advanced, so listeners observe a consistent mixer.
func (m *Mixer) Update(dt float64) {
	if m == nil || dt <= 0 {
		return
	}
	var finished []*Action
	for _, a := range m.actions {
		if a.advance(dt) {
			finished = append(finished, a)
		}
	}
	for _, a := range finished {
		a.dispatchFinished()
	}
}
