package geometry

// Line is a directed segment in world space.
type Line struct {
	Start Vec2
	End   Vec2
}

// Direction returns End - Start.
func (l Line) Direction() Vec2 {
	return l.End.Sub(l.Start)
}

// Intersect returns the point where two finite segments cross.
//
// With r = a.End-a.Start, s = b.End-b.Start, p = a.Start and q = b.Start the
// hit is p + r*t where t = cross(q-p, s)/cross(r, s) and
// u = cross(q-p, r)/cross(r, s) must both lie in [0, 1]. Parallel, coincident
// and zero-length segments never intersect.
func Intersect(a, b Line) (Vec2, bool) {
	r := a.Direction()
	s := b.Direction()

	denom := Cross(r, s)
	if denom > -ParallelEpsilon && denom < ParallelEpsilon {
		return Zero, false
	}

	qp := b.Start.Sub(a.Start)
	t := Cross(qp, s) / denom
	u := Cross(qp, r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Zero, false
	}

	return a.Start.Add(r.Mul(t)), true
}

// Intersects reports whether the segments cross.
func (l Line) Intersects(other Line) bool {
	_, ok := Intersect(l, other)
	return ok
}
