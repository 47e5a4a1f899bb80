package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/rollcourse/common"
	"github.com/milk9111/rollcourse/logging"
	"go.uber.org/zap"
)

func main() {
	seed := flag.Uint64("seed", 0, "course seed (0 uses course.yaml, or a random seed)")
	length := flag.Int("length", 0, "number of obstacle blocks (0 uses course.yaml)")
	debug := flag.Bool("debug", false, "enable debug logging and HUD")
	watch := flag.Bool("watch", false, "rebuild the course when prefabs/*.yaml change")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("rollcourse")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{Seed: *seed, Length: *length, Debug: *debug, Watch: *watch}, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", zap.Error(err))
	}
}
