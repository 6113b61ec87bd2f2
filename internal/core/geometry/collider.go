package geometry

// Collider is the physical footprint of a tile or entity: the union of its
// rectangles. Colliders are values and are rebuilt per query.
type Collider struct {
	Rects []Rect
}

// NewCollider builds a collider from rects.
func NewCollider(rects ...Rect) Collider {
	return Collider{Rects: rects}
}

// Translate returns a copy of c with every rectangle shifted by offset.
func (c Collider) Translate(offset Vec2) Collider {
	out := make([]Rect, len(c.Rects))
	for i, r := range c.Rects {
		out[i] = r.Translate(offset)
	}
	return Collider{Rects: out}
}

// Overlaps tests every rectangle of c against every rectangle of other and
// returns the first overlapping region found.
func (c Collider) Overlaps(other Collider) (Rect, bool) {
	for _, a := range c.Rects {
		for _, b := range other.Rects {
			if hit, ok := a.Overlap(b); ok {
				return hit, true
			}
		}
	}
	return Rect{}, false
}

// Bounds returns the smallest rectangle containing every part of c.
func (c Collider) Bounds() Rect {
	if len(c.Rects) == 0 {
		return Rect{}
	}
	b := c.Rects[0]
	right, bottom := b.Right(), b.Bottom()
	for _, r := range c.Rects[1:] {
		b.X = min(b.X, r.X)
		b.Y = min(b.Y, r.Y)
		right = max(right, r.Right())
		bottom = max(bottom, r.Bottom())
	}
	b.Width = right - b.X
	b.Height = bottom - b.Y
	return b
}
