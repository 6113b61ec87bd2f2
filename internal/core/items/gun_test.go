package items

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGun_FireUntilEmpty(t *testing.T) {
	g := NewAssaultRifle()
	fired := 0
	for i := 0; i < 100; i++ {
		if g.TryFire() {
			fired++
		}
		g.Update(g.FireInterval)
	}
	assert.Equal(t, 30, fired)
	assert.True(t, g.Mag.Empty())
	assert.False(t, g.TryFire())

	g.Reload()
	assert.EqualValues(t, 30, g.Mag.Bullets)
	assert.True(t, g.TryFire())
}

func TestGun_Cooldown(t *testing.T) {
	g := NewAssaultRifle()
	require.True(t, g.TryFire())
	assert.False(t, g.TryFire())

	g.Update(g.FireInterval / 2)
	assert.False(t, g.TryFire())

	g.Update(g.FireInterval / 2)
	assert.True(t, g.TryFire())
	assert.EqualValues(t, 28, g.Mag.Bullets)
}

func TestGun_SpreadBounded(t *testing.T) {
	g := NewAssaultRifle()
	rng := rand.New(rand.NewPCG(1, 2))
	limit := math.Pi / float64(g.Accuracy)
	for i := 0; i < 1000; i++ {
		s := float64(g.Spread(rng))
		assert.LessOrEqual(t, math.Abs(s), limit+1e-6)
	}

	g.Accuracy = 0
	assert.Zero(t, g.Spread(rng))
}
