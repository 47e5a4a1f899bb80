package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/rollcourse/clock"
	"github.com/milk9111/rollcourse/common"
	"github.com/milk9111/rollcourse/ecs"
	"github.com/milk9111/rollcourse/ecs/component"
	"github.com/milk9111/rollcourse/ecs/entity"
	"github.com/milk9111/rollcourse/ecs/render"
	"github.com/milk9111/rollcourse/ecs/system"
	"github.com/milk9111/rollcourse/input"
	"github.com/milk9111/rollcourse/levels"
	"github.com/milk9111/rollcourse/logging"
	"github.com/milk9111/rollcourse/physics"
	"github.com/milk9111/rollcourse/prefabs"
	"go.uber.org/zap"
)

var defaultBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x2a, A: 0xff}

type Options struct {
	Seed   uint64
	Length int
	Debug  bool
	Watch  bool
}

type Game struct {
	logger *zap.Logger
	opts   Options

	specs    entity.Specs
	keys     keySource
	controls *input.Controls

	world      *ecs.World
	physics    *physics.World
	controller *system.PlayerControllerSystem
	seed       uint64

	paused  bool
	quit    bool
	status  string
	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(opts Options, logger *zap.Logger) (*Game, error) {
	logger = logging.OrNop(logger)

	specs, err := entity.LoadSpecs()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	keys := keySource{keys: keyTable()}
	if err := keys.checkKeys(specs.Controls.Bindings, specs.Controls.Pause); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	controls, err := input.NewControls(keys, specs.Controls.Bindings)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		logger:   logger,
		opts:     opts,
		specs:    specs,
		keys:     keys,
		controls: controls,
	}
	g.pauseUI = NewPauseUI(g)

	seed := opts.Seed
	if seed == 0 {
		seed = specs.Course.Seed
	}
	if seed == 0 {
		seed = levels.RandomSeed()
	}
	if err := g.loadCourse(seed); err != nil {
		return nil, err
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			logger.Warn("prefab watcher disabled", zap.String("dir", prefabs.Dir), zap.Error(err))
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadCourse generates a course from seed and replaces the current world.
func (g *Game) loadCourse(seed uint64) error {
	cfg := g.specs.Course.Config()
	if g.opts.Length > 0 {
		cfg.Length = g.opts.Length
	}

	blocks, err := levels.Generate(cfg, levels.NewRand(seed))
	if err != nil {
		return fmt.Errorf("game: generate course: %w", err)
	}

	world := ecs.NewWorld()
	pw := physics.NewWorld(physics.DefaultGravity)
	if err := entity.LoadCourseToWorld(world, pw, blocks, seed, g.specs.Blocks); err != nil {
		return fmt.Errorf("game: load course: %w", err)
	}
	if _, err := entity.NewPlayer(world, pw, g.specs.Player); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	if _, err := entity.NewCamera(world, g.specs.Camera, g.specs.Player.Spawn); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	controller := system.NewPlayerControllerSystem(world, pw, g.controls)
	world.AddSystem(system.NewTimeSystem(clock.New(), 1.0/common.TPS))
	world.AddSystem(system.NewInputSystem(g.controls))
	world.AddSystem(controller)
	world.AddSystem(system.NewObstacleSystem(pw))
	world.AddSystem(system.NewPhysicsSystem(pw))
	world.AddSystem(system.NewGoalSystem(pw))
	world.AddSystem(system.NewCameraSystem())

	if g.controller != nil {
		g.controller.Close()
	}
	g.world = world
	g.physics = pw
	g.controller = controller
	g.seed = seed
	g.status = ""

	g.logger.Info("course loaded",
		zap.Uint64("seed", seed),
		zap.Int("length", cfg.Length),
		zap.Int("bodies", pw.Len()),
	)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.drainWatcher()

	if g.keys.justPressed(g.specs.Controls.Pause) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.world.Update()
	for _, evt := range g.world.Events().Drain() {
		g.handleEvent(evt)
	}
	return nil
}

func (g *Game) handleEvent(evt ecs.Event) {
	data, _ := evt.Data.(ecs.CourseEvent)
	switch evt.Type {
	case ecs.EventCourseCompleted:
		g.status = "Course complete! Esc for a new course."
		g.logger.Info("course completed", zap.Uint64("seed", g.seed), zap.Uint64("frame", data.Frame))
	case ecs.EventPlayerFell:
		g.status = "Fell off. Back to the start."
		g.logger.Debug("player fell", zap.Uint64("frame", data.Frame))
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

// reload re-reads every prefab and rebuilds the course with the same seed.
// On any error the running course is kept.
func (g *Game) reload(name string) {
	specs, err := entity.LoadSpecs()
	if err != nil {
		g.logger.Warn("prefab reload failed", zap.String("file", name), zap.Error(err))
		return
	}
	if err := g.keys.checkKeys(specs.Controls.Bindings, specs.Controls.Pause); err != nil {
		g.logger.Warn("prefab reload failed", zap.String("file", name), zap.Error(err))
		return
	}

	prev := g.specs
	g.specs = specs
	if err := g.loadCourse(g.seed); err != nil {
		g.specs = prev
		g.logger.Warn("course rebuild failed", zap.String("file", name), zap.Error(err))
		return
	}
	if err := g.controls.Rebind(specs.Controls.Bindings); err != nil {
		g.logger.Warn("rebind controls", zap.Error(err))
	}
	g.logger.Info("prefabs reloaded", zap.String("file", name))
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
}

func (g *Game) newCourse() {
	if err := g.loadCourse(levels.RandomSeed()); err != nil {
		g.logger.Error("new course", zap.Error(err))
		return
	}
	g.setPaused(false)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.specs.Camera.Background.Or(defaultBackground))

	bounds := screen.Bounds()
	if scene := render.Build(g.world, float64(bounds.Dx()), float64(bounds.Dy())); scene != nil {
		drawPolygons(screen, scene.Polygons())
	}

	ebitenutil.DebugPrint(screen, g.hud())

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hud() string {
	s := fmt.Sprintf("FPS: %.1f  seed: %d", ebiten.ActualFPS(), g.seed)
	if g.status != "" {
		s += "\n" + g.status
	}
	if g.opts.Debug {
		if player, ok := g.world.First(component.PlayerTagComponent, component.RigidBodyComponent); ok {
			body, _ := ecs.Get(g.world, player, component.RigidBodyComponent)
			pos := g.physics.Translation(body.Handle)
			s += fmt.Sprintf("\nball: %.2f %.2f %.2f  grounded: %v  t: %.2f",
				pos.X(), pos.Y(), pos.Z(), g.controller.Grounded(), g.world.Frame().Elapsed)
		}
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g == nil {
		return
	}
	if g.controller != nil {
		g.controller.Close()
	}
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
