// Command simulate drives the character headless from a tengo input script
// and logs where it ends up.
//
//	simulate -script tour -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/config"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/ecs/entity"
	"github.com/RobeSantoro/avatar-controller/ecs/system"
	"github.com/RobeSantoro/avatar-controller/prefabs"
	"github.com/RobeSantoro/avatar-controller/script"
)

var errLoadTimeout = errors.New("clips did not load in time")

type options struct {
	script      string
	loadTimeout time.Duration
}

func main() {
	cfg, opts, err := parseArgs(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	lg := cfg.Logger()
	prefabs.SetDir(cfg.PrefabDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, opts, lg); err != nil {
		lg.WithError(err).Error("simulation failed")
		os.Exit(1)
	}
}

func parseArgs(name string, args []string) (config.Config, options, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, options{}, err
	}
	opts := options{script: "tour", loadTimeout: 5 * time.Second}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.StringVar(&opts.script, "script", opts.script, "input script under prefabs/scripts")
	fs.DurationVar(&opts.loadTimeout, "load-timeout", opts.loadTimeout, "how long to wait for animation clips")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, options{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, options{}, err
	}
	return cfg, opts, nil
}

func run(ctx context.Context, cfg config.Config, opts options, lg *logrus.Logger) error {
	src, err := prefabs.LoadScript(opts.script)
	if err != nil {
		return err
	}
	frames, err := script.Load(ctx, opts.script, src, cfg.TickDuration())
	if err != nil {
		return err
	}
	lg.WithFields(logrus.Fields{
		"script":   opts.script,
		"frames":   len(frames),
		"duration": script.Duration(frames),
	}).Info("script loaded")

	w := ecs.NewWorld()
	events := system.NewEventLogSystem(lg, 0)
	scene, err := entity.BuildScene(ctx, w, entity.SceneOptions{Frames: frames, Log: lg})
	if err != nil {
		return err
	}

	// Clips arrive on wall-clock time; tick without input until they bind so
	// no scripted frame is spent waiting.
	loading := system.NewTickScheduler(lg, nil, events)
	start := time.Now()
	if err := waitReady(ctx, w, scene, loading, cfg.TickDuration(), opts.loadTimeout); err != nil {
		return err
	}
	lg.WithField("after", time.Since(start).Round(time.Millisecond)).Debug("character ready")

	sched := system.NewTickScheduler(lg, system.NewScriptInputSystem(), events)
	ticks, elapsed := 0, 0.0
	for {
		dt, ok := system.NextScriptDT(w)
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sched.Update(w, dt)
		if err := w.Err(); err != nil {
			return fmt.Errorf("tick %d: %w", ticks, err)
		}
		ticks++
		elapsed += dt
		if lg.IsLevelEnabled(logrus.TraceLevel) {
			lg.WithFields(sample(w, scene)).WithField("t", elapsed).Trace("tick")
		}
	}

	lg.WithFields(sample(w, scene)).WithFields(logrus.Fields{
		"ticks":   ticks,
		"elapsed": elapsed,
	}).Info("simulation done")
	return nil
}

func waitReady(ctx context.Context, w *ecs.World, scene *entity.Scene, sched *ecs.Scheduler, dt float64, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer tick.Stop()

	for {
		sched.Update(w, dt)
		if err := w.Err(); err != nil {
			return err
		}
		if ch, ok := ecs.Get(w, scene.Player, component.CharacterComponent.Kind()); ok && ch.Ready {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w (%s)", errLoadTimeout, timeout)
		case <-tick.C:
		}
	}
}

func sample(w *ecs.World, scene *entity.Scene) logrus.Fields {
	fields := logrus.Fields{}
	if ch, ok := ecs.Get(w, scene.Player, component.CharacterComponent.Kind()); ok {
		state, _ := ch.Controller.State()
		fields["state"] = state.String()
		fields["pos"] = fmtVec(ch.Controller.Position())
		fields["speed"] = fmt.Sprintf("%.3f", ch.Controller.Velocity()[2])
		fields["yaw"] = fmt.Sprintf("%.1f", mgl64.RadToDeg(ch.Controller.Motion().Yaw()))
	}
	if cam, ok := ecs.Get(w, scene.Camera, component.CameraComponent.Kind()); ok {
		fields["camera"] = fmtVec(cam.Rig.Position())
	}
	return fields
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}
