package world

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tds/internal/core/bullet"
	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/grid"
	"github.com/zeusync/tds/internal/core/observability/log"
)

const frame = float32(1.0 / 60)

// walledRoom is a size x size map whose border cells are solid blocks, leaving
// an open interior from 32 to (size-1)*32 on both axes.
func walledRoom(t *testing.T, size int) *grid.Grid {
	t.Helper()
	ground := make([][]uint32, size)
	walls := make([][]uint32, size)
	for y := 0; y < size; y++ {
		ground[y] = make([]uint32, size)
		walls[y] = make([]uint32, size)
		for x := 0; x < size; x++ {
			ground[y][x] = 1
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				walls[y][x] = 5
			}
		}
	}
	g, err := grid.New(ground, walls)
	require.NoError(t, err)
	return g
}

type recorder struct {
	events []bus.Event
}

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func newWorld(t *testing.T, params Params) (*World, *recorder) {
	t.Helper()
	b := bus.New()
	rec := &recorder{}
	_, err := b.Subscribe(bus.Wildcard, func(e bus.Event) error {
		rec.events = append(rec.events, e)
		return nil
	})
	require.NoError(t, err)
	w := New(walledRoom(t, 6), params, rand.New(rand.NewPCG(7, 11)), b, log.NewNop())
	return w, rec
}

func TestSpawnBullet(t *testing.T) {
	w, rec := newWorld(t, DefaultParams())

	require.True(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Vec2{3, 0}))

	bullets := w.Bullets()
	require.Len(t, bullets, 1)
	assert.InDelta(t, 95, bullets[0].Pos.X(), 1e-4)
	assert.InDelta(t, 80, bullets[0].Pos.Y(), 1e-4)
	assert.InDelta(t, 200, bullets[0].Vel.X(), 1e-4)
	assert.Equal(t, []string{EventBulletSpawned}, rec.types())

	payload, ok := rec.events[0].Data.(BulletEvent)
	require.True(t, ok)
	assert.Equal(t, bullets[0].ID, payload.ID)
}

func TestSpawnBullet_VetoedInsideWall(t *testing.T) {
	w, rec := newWorld(t, DefaultParams())

	assert.False(t, w.SpawnBullet(geometry.Vec2{40, 80}, geometry.Vec2{-1, 0}))

	assert.Zero(t, w.BulletCount())
	assert.Equal(t, []string{EventBulletRejected}, rec.types())
}

func TestSpawnBullet_ZeroAim(t *testing.T) {
	w, rec := newWorld(t, DefaultParams())

	assert.False(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Zero))
	assert.Zero(t, w.BulletCount())
	assert.Empty(t, rec.events)
}

func TestUpdateBullets_PrunesStopped(t *testing.T) {
	w, rec := newWorld(t, DefaultParams())
	require.True(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Vec2{1, 0}))
	require.True(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Vec2{0, 1}))

	for i := 0; i < 60 && w.BulletCount() > 0; i++ {
		w.UpdateBullets(frame)
	}

	assert.Zero(t, w.BulletCount())
	stopped := 0
	for _, typ := range rec.types() {
		if typ == EventBulletStopped {
			stopped++
		}
	}
	assert.Equal(t, 2, stopped)
	assert.Positive(t, w.Frame())
}

func TestUpdateBullets_UpdatesBeforePruning(t *testing.T) {
	w, _ := newWorld(t, DefaultParams())
	slow := bullet.New(geometry.Vec2{60, 60}, geometry.Vec2{25, 0}, bullet.DefaultParams())
	fast := bullet.New(geometry.Vec2{60, 100}, geometry.Vec2{100, 0}, bullet.DefaultParams())
	w.bullets = append(w.bullets, slow, fast)

	w.UpdateBullets(frame)

	require.Equal(t, 1, w.BulletCount())
	assert.Same(t, fast, w.Bullets()[0])
	assert.True(t, slow.Stopped())
	assert.Equal(t, geometry.Vec2{60, 60}, slow.History[0])
	assert.Equal(t, geometry.Vec2{60, 60}, slow.Pos)
}

func TestUpdateBullets_RicochetEvent(t *testing.T) {
	params := DefaultParams()
	params.BulletSpeed = 3000
	w, rec := newWorld(t, params)
	require.True(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Vec2{1, 0}))

	w.UpdateBullets(frame)
	w.UpdateBullets(frame)

	var ricochet *bus.Event
	for i := range rec.events {
		if rec.events[i].Type == EventBulletRicochet {
			ricochet = &rec.events[i]
			break
		}
	}
	require.NotNil(t, ricochet, "events: %v", rec.types())
	payload := ricochet.Data.(BulletEvent)
	require.NotNil(t, payload.HitLine)
	assert.Equal(t, float32(160), payload.HitLine.Start.X())
	assert.Less(t, payload.Pos.X(), float32(160))
}

func TestExplode(t *testing.T) {
	w, rec := newWorld(t, DefaultParams())

	n := w.Explode(geometry.Vec2{96, 96})

	assert.Equal(t, 25, n)
	require.Equal(t, 25, w.BulletCount())
	for i, b := range w.Bullets() {
		speed := b.Speed()
		assert.GreaterOrEqual(t, speed, float32(420-1e-3), "fragment %d", i)
		assert.Less(t, speed, float32(780+1e-3), "fragment %d", i)
		assert.Equal(t, geometry.Vec2{96, 96}, b.Pos)
	}

	first := w.Bullets()[0]
	assert.InDelta(t, 0, geometry.Angle(first.Vel), 1e-5)
	assert.Equal(t, []string{EventExplosion}, rec.types())
}

func TestNilBus(t *testing.T) {
	w := New(walledRoom(t, 6), DefaultParams(), rand.New(rand.NewPCG(1, 1)), nil, log.NewNop())
	assert.True(t, w.SpawnBullet(geometry.Vec2{80, 80}, geometry.Vec2{1, 0}))
	w.UpdateBullets(frame)
	assert.NotNil(t, w.Grid())
}
