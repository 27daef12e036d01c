package system

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/anim"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/prefabs"
)

// LoadClips streams clips on a separate goroutine, one every latency, the
// way an asset loader would. The channel is closed once every clip has been
// sent or ctx is done.
func LoadClips(ctx context.Context, clips []prefabs.ClipSpec, latency time.Duration) <-chan component.ClipLoad {
	out := make(chan component.ClipLoad, len(clips))
	go func() {
		defer close(out)
		for _, c := range clips {
			if latency > 0 {
				t := time.NewTimer(latency)
				select {
				case <-ctx.Done():
					t.Stop()
					return
				case <-t.C:
				}
			}
			ld := component.ClipLoad{State: c.State, Clip: c.AnimClip()}
			select {
			case out <- ld:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// ClipLoaderSystem binds clips handed over by LoadClips. Binding happens on
// the tick goroutine so the mixer is never touched concurrently.
type ClipLoaderSystem struct {
	log logrus.FieldLogger
}

func NewClipLoaderSystem(log logrus.FieldLogger) *ClipLoaderSystem {
	return &ClipLoaderSystem{log: log}
}

func (s *ClipLoaderSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.AnimationComponent.Kind(), func(e ecs.Entity, a *component.Animation) {
		for a.Loads != nil {
			select {
			case ld, ok := <-a.Loads:
				if !ok {
					a.Loads = nil
					if !a.Binding.Ready() {
						s.log.WithFields(logrus.Fields{
							"entity":  e,
							"missing": a.Binding.Missing(),
						}).Warn("clip loader finished with clips missing")
					}
					return
				}
				s.bind(w, e, a, ld)
			default:
				return
			}
		}
	})
}

func (s *ClipLoaderSystem) bind(w *ecs.World, e ecs.Entity, a *component.Animation, ld component.ClipLoad) {
	log := s.log.WithFields(logrus.Fields{"entity": e, "state": ld.State, "clip": ld.Clip.Name})
	if ld.Err != nil {
		log.WithError(ld.Err).Error("clip failed to load")
		return
	}
	action := a.Mixer.ClipAction(ld.Clip)
	if err := a.Binding.Bind(ld.State, action); err != nil {
		if errors.Is(err, anim.ErrAlreadyBound) {
			log.Warn("clip already bound, keeping the first")
			return
		}
		log.WithError(err).Error("bind clip")
		return
	}
	log.WithField("duration", ld.Clip.Duration).Debug("clip bound")
	w.Events().Push(ecs.Event{Entity: e, Kind: ecs.EventClipBound, Data: ld.State})
}
