package injector

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/wire"

	"github.com/zeusync/tds/internal/config"
	"github.com/zeusync/tds/internal/core/daycycle"
	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/game"
	"github.com/zeusync/tds/internal/core/grid"
	"github.com/zeusync/tds/internal/core/items"
	"github.com/zeusync/tds/internal/core/lighting"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
	"github.com/zeusync/tds/internal/core/world"
)

// App is everything the runner needs once the graph is built.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Bus    bus.EventBus
	Game   *game.Game
}

var SimSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideRandom,
	wire.Bind(new(world.Random), new(*rand.Rand)),
	wire.Bind(new(game.Random), new(*rand.Rand)),
	ProvideGrid,
	ProvideLightEngine,
	ProvideDayCycle,
	ProvidePlayer,
	ProvideGun,
	ProvideBus,
	ProvideWorld,
	game.New,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) (*log.Logger, error) {
	return log.NewWithConfig(cfg.Log)
}

// ProvideRandom seeds the single generator shared by the whole simulation.
func ProvideRandom(cfg *config.Config) *rand.Rand {
	return rand.New(rand.NewPCG(cfg.Sim.Seed, cfg.Sim.Seed^0x9e3779b97f4a7c15))
}

func ProvideGrid(cfg *config.Config, logger log.Log) (*grid.Grid, error) {
	g, err := grid.LoadFile(cfg.Map.Path, cfg.Map.Width, cfg.Map.Height)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", cfg.Map.Path, err)
	}
	logger.Info("map loaded",
		log.String("path", cfg.Map.Path),
		log.Int("width", g.Width()),
		log.Int("height", g.Height()),
		log.Int("walls", g.WallCount()),
		log.Uint64("fingerprint", g.Fingerprint()),
	)
	return g, nil
}

func ProvideLightEngine(cfg *config.Config) *lighting.Engine {
	return lighting.NewEngine(cfg.Lighting.MaxLights)
}

func ProvideDayCycle(cfg *config.Config, engine *lighting.Engine) (*daycycle.DayCycle, error) {
	d, err := daycycle.New(engine, cfg.DayCycle.Length)
	if err != nil {
		return nil, err
	}
	if cfg.DayCycle.Start != "" {
		phase, err := daycycle.ParsePhase(cfg.DayCycle.Start)
		if err != nil {
			return nil, err
		}
		d.JumpTo(phase)
	}
	return d, nil
}

func ProvidePlayer(cfg *config.Config, engine *lighting.Engine) (*player.Player, error) {
	return player.New(cfg.Map.Spawn, cfg.PlayerParams(), engine)
}

func ProvideGun(cfg *config.Config) *items.Gun {
	return cfg.NewGun()
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideWorld(cfg *config.Config, g *grid.Grid, rng world.Random, eventBus bus.EventBus, logger log.Log) *world.World {
	return world.New(g, cfg.WorldParams(), rng, eventBus, logger)
}
