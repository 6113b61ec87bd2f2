package bullet

import "github.com/zeusync/tds/internal/core/geometry"

// Hit is one candidate collision found during a sweep.
type Hit struct {
	Point      geometry.Vec2
	Reflection geometry.Vec2
	Line       geometry.Line
}

// Sweep collects every wall edge crossed by the segment the bullet would
// travel this frame. Edges that also cross the vertical-only probe are treated
// as horizontal faces and flip the y axis; all others flip x. The retention
// factor k is drawn per hit from [0, Bounciness].
func Sweep(pos, vel geometry.Vec2, dt float32, walls WallSource, bounciness float32, rng Random) []Hit {
	path := geometry.Line{Start: pos, End: pos.Add(vel.Mul(dt))}
	probe := geometry.Line{Start: pos, End: pos.Add(geometry.Vec2{0, vel[1]}.Mul(dt))}

	var hits []Hit
	walls.EachWallRect(func(_, _ int, r geometry.Rect) bool {
		for _, edge := range r.Lines() {
			point, ok := geometry.Intersect(edge, path)
			if !ok {
				continue
			}
			k := rng.Float32() * bounciness
			reflection := geometry.Vec2{-k, k}
			if edge.Intersects(probe) {
				reflection = geometry.Vec2{k, -k}
			}
			hits = append(hits, Hit{Point: point, Reflection: reflection, Line: edge})
		}
		return true
	})
	return hits
}

// Closest picks the hit to resolve. TieBreakOrigin compares the length of the
// hit point itself, not its distance from the bullet.
func Closest(hits []Hit, pos geometry.Vec2, mode TieBreak) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	dist := func(h Hit) float32 {
		if mode == TieBreakBullet {
			return h.Point.Sub(pos).Len()
		}
		return h.Point.Len()
	}

	best := 0
	bestDist := dist(hits[0])
	for i := 1; i < len(hits); i++ {
		if d := dist(hits[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return hits[best], true
}

// handleCollisions resolves the closest wall hit along this frame's path.
// It reports whether the bullet was repositioned.
func (b *Bullet) handleCollisions(dt float32, walls WallSource, rng Random) bool {
	hits := Sweep(b.Pos, b.Vel, dt, walls, b.Params.Bounciness, rng)
	hit, ok := Closest(hits, b.Pos, b.Params.TieBreak)
	if !ok {
		return false
	}

	b.Vel = geometry.MulComponents(b.Vel, hit.Reflection)
	b.Pos = hit.Point
	if dir, ok := geometry.Normalize(b.Vel); ok {
		b.Pos = b.Pos.Add(dir.Mul(b.Params.PushEpsilon))
	}

	line := hit.Line
	b.Collided = true
	b.Reflection = hit.Reflection
	b.HitLine = &line
	return true
}
