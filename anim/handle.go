// Package anim provides the clip playback surface the locomotion states drive:
// the Handle interface, the append-only Binding of state name to Handle, and a
// small clip Mixer that implements Handle for the demo and the simulator.
package anim

// Token identifies one finished-listener subscription.
type Token uint64

// Handle is the playback surface of one named clip.
type Handle interface {
	Play()
	// CrossFadeFrom fades prev out and this handle in over duration seconds.
	// With warp set, both time scales are ramped so the clips meet in phase.
	CrossFadeFrom(prev Handle, duration float64, warp bool)
	SetLoopOnce()
	ClampWhenFinished(clamp bool)
	Time() float64
	SetTime(seconds float64)
	SetTimeScale(scale float64)
	SetWeight(weight float64)
	ClipDuration() float64
	// SubscribeFinished registers fn to run when a play-once clip reaches its
	// end. The returned token is the only way to remove it.
	SubscribeFinished(fn func()) Token
	UnsubscribeFinished(tok Token)
}
