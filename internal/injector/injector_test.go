package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tds/internal/config"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/grid"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Map.Path = "../core/grid/testdata/room.tmx"
	cfg.Map.Spawn = geometry.Vec2{16, 16}
	cfg.DayCycle.Start = "noon"
	return cfg
}

func TestInitializeApp(t *testing.T) {
	app, err := InitializeApp(testConfig())
	require.NoError(t, err)

	assert.NotNil(t, app.Logger)
	assert.NotNil(t, app.Bus)
	require.NotNil(t, app.Game)
	assert.Equal(t, 5, app.Game.World().Grid().Width())
	assert.Equal(t, "Game Time: 12:00 PM", app.Game.DayCycle().Clock())

	app.Game.Step(app.Config.FrameTime(), player.Input{Aim: geometry.Vec2{16, 100}, Fire: true})
	assert.EqualValues(t, 1, app.Game.Stats().Frame)
}

func TestInitializeApp_MissingMap(t *testing.T) {
	cfg := testConfig()
	cfg.Map.Path = "does-not-exist.tmx"

	_, err := InitializeApp(cfg)
	assert.Error(t, err)
}

func TestProvideRandom_Deterministic(t *testing.T) {
	cfg := testConfig()
	a := ProvideRandom(cfg)
	b := ProvideRandom(cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float32(), b.Float32())
	}
}

func TestProvideGrid(t *testing.T) {
	cfg := testConfig()
	g, err := ProvideGrid(cfg, log.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &grid.Grid{}, g)
}
