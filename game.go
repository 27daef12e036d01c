package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/RobeSantoro/avatar-controller/common"
	"github.com/RobeSantoro/avatar-controller/config"
	"github.com/RobeSantoro/avatar-controller/ecs"
	"github.com/RobeSantoro/avatar-controller/ecs/component"
	"github.com/RobeSantoro/avatar-controller/ecs/entity"
	"github.com/RobeSantoro/avatar-controller/ecs/system"
	"github.com/RobeSantoro/avatar-controller/ecs/view"
	"github.com/RobeSantoro/avatar-controller/prefabs"
)

type Game struct {
	cfg config.Config
	log *logrus.Logger
	ctx context.Context

	world    *ecs.World
	sched    *ecs.Scheduler
	events   *system.EventLogSystem
	renderer *view.Renderer
	scene    *entity.Scene

	ui      *ebitenui.UI
	overlay *debugOverlay
	watcher *prefabs.Watcher
}

func NewGame(ctx context.Context, cfg config.Config, lg *logrus.Logger) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		log:      lg,
		ctx:      ctx,
		world:    ecs.NewWorld(),
		events:   system.NewEventLogSystem(lg, 8),
		renderer: view.NewRenderer(nil),
	}

	scene, err := entity.BuildScene(ctx, g.world, entity.SceneOptions{View: g.renderer, Log: lg})
	if err != nil {
		return nil, err
	}
	g.scene = scene
	g.renderer.Body = scene.Character.BodyColor(g.renderer.Body)
	g.sched = system.NewTickScheduler(lg, view.NewInputSystem(nil), g.events)

	if in, ok := ecs.Get(g.world, scene.Player, component.InputComponent.Kind()); ok {
		in.Debug = cfg.Debug
	}
	g.overlay = newDebugOverlay(g)
	g.ui = g.overlay.ui

	if cfg.Watch && cfg.PrefabDir != "" {
		w, err := prefabs.NewWatcher(cfg.PrefabDir, lg)
		if err != nil {
			lg.WithError(err).WithField("dir", cfg.PrefabDir).Warn("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	lg.WithFields(logrus.Fields{"tps": cfg.TPS, "prefabs": cfg.PrefabDir, "watch": g.watcher != nil}).Info("game ready")
	return g, nil
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	g.drainWatcher()

	g.sched.Update(g.world, g.cfg.TickDuration())
	if err := g.world.Err(); err != nil {
		return fmt.Errorf("tick: %w", err)
	}

	if g.debugVisible() {
		g.overlay.refresh()
		g.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debugVisible() {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) debugVisible() bool {
	in, ok := ecs.Get(g.world, g.scene.Player, component.InputComponent.Kind())
	return ok && in.Debug
}

func (g *Game) setDebug(on bool) {
	if in, ok := ecs.Get(g.world, g.scene.Player, component.InputComponent.Kind()); ok {
		in.Debug = on
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reload(change); err != nil {
				g.log.WithError(err).WithField("file", change.Name).Warn("prefab reload rejected")
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("prefab watcher")
			}
		default:
			return
		}
	}
}

var errNeedsRestart = errors.New("takes effect on restart")

// reload applies an edited prefab between ticks. Bindings are append-only,
// so clip changes wait for the next run.
func (g *Game) reload(change prefabs.Change) error {
	switch change.Name {
	case prefabs.CharacterFile:
		spec, err := prefabs.LoadCharacterSpec()
		if err != nil {
			return err
		}
		profile, err := spec.Profile()
		if err != nil {
			return err
		}
		ch, ok := ecs.Get(g.world, g.scene.Player, component.CharacterComponent.Kind())
		if !ok {
			return nil
		}
		if err := ch.Controller.SetProfile(profile); err != nil {
			return err
		}
		g.scene.Character = spec
		g.renderer.Body = spec.BodyColor(g.renderer.Body)
	case prefabs.CameraFile:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return err
		}
		settings, err := spec.Settings()
		if err != nil {
			return err
		}
		cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent.Kind())
		if !ok {
			return nil
		}
		if err := cam.Rig.SetSettings(settings); err != nil {
			return err
		}
	case prefabs.AnimationsFile:
		return errNeedsRestart
	default:
		return nil
	}
	g.log.WithField("file", change.Name).Info("prefab reloaded")
	return nil
}
