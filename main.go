package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/RobeSantoro/avatar-controller/common"
	"github.com/RobeSantoro/avatar-controller/config"
	"github.com/RobeSantoro/avatar-controller/prefabs"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
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

	game, err := NewGame(ctx, cfg, lg)
	if err != nil {
		lg.WithError(err).Fatal("build game")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("avatar controller")
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		lg.WithError(err).Error("game exited")
		game.Close()
		os.Exit(1)
	}
}
