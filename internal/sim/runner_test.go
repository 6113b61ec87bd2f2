package sim

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/tds/internal/core/daycycle"
	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/game"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/grid"
	"github.com/zeusync/tds/internal/core/items"
	"github.com/zeusync/tds/internal/core/lighting"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
	"github.com/zeusync/tds/internal/core/world"
)

func newGame(t *testing.T, eventBus bus.EventBus) *game.Game {
	t.Helper()
	ground := [][]uint32{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}}
	walls := [][]uint32{{5, 5, 5, 5}, {5, 0, 0, 5}, {5, 0, 0, 5}, {5, 5, 5, 5}}
	g, err := grid.New(ground, walls)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	lights := lighting.NewEngine(0)
	day, err := daycycle.New(lights, 0)
	require.NoError(t, err)
	p, err := player.New(geometry.Vec2{64, 64}, player.DefaultParams(), lights)
	require.NoError(t, err)
	w := world.New(g, world.DefaultParams(), rng, eventBus, log.NewNop())
	return game.New(w, p, items.NewAssaultRifle(), lights, day, rng, log.NewNop())
}

func TestRun_FrameBudget(t *testing.T) {
	eventBus := bus.New()
	g := newGame(t, eventBus)
	script := player.NewScript(player.ScriptStep{
		Frames: 10,
		Input:  player.Input{Aim: geometry.Vec2{100, 64}, Fire: true},
	})

	r, err := New(g, script, eventBus, log.NewNop(), Options{Step: time.Second / 60, Frames: 120})
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	assert.EqualValues(t, 120, g.Stats().Frame)
	counts := r.EventCounts()
	assert.Positive(t, counts[world.EventBulletSpawned]+counts[world.EventBulletRejected])
}

func TestRun_Cancelled(t *testing.T) {
	g := newGame(t, nil)
	r, err := New(g, player.NewScript(), nil, log.NewNop(), Options{Step: time.Millisecond, Realtime: true})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err = r.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, g.Stats().Frame)
}

func TestRun_LogsStats(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := log.NewWithCore(core, log.LevelInfo)
	g := newGame(t, nil)

	r, err := New(g, player.NewScript(), nil, logger, Options{
		Step:       100 * time.Millisecond,
		Frames:     30,
		StatsEvery: time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 3, logs.FilterMessage("stats").Len())
	assert.Equal(t, 1, logs.FilterMessage("simulation finished").Len())
}
