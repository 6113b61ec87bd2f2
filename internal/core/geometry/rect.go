package geometry

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Center returns the midpoint of the box.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Translate returns r shifted by offset.
func (r Rect) Translate(offset Vec2) Rect {
	r.X += offset[0]
	r.Y += offset[1]
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p[0] >= r.X && p[0] <= r.Right() && p[1] >= r.Y && p[1] <= r.Bottom()
}

// Overlap returns the region shared by r and o. Boxes that only touch along
// an edge do not overlap.
func (r Rect) Overlap(o Rect) (Rect, bool) {
	if !(r.X < o.Right() && r.Right() > o.X && r.Y < o.Bottom() && r.Bottom() > o.Y) {
		return Rect{}, false
	}

	left := max(r.X, o.X)
	top := max(r.Y, o.Y)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())

	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}, true
}

// Lines returns the four boundary segments: top, bottom, left, right.
func (r Rect) Lines() [4]Line {
	tl := Vec2{r.X, r.Y}
	tr := Vec2{r.Right(), r.Y}
	bl := Vec2{r.X, r.Bottom()}
	br := Vec2{r.Right(), r.Bottom()}

	return [4]Line{
		{Start: tl, End: tr},
		{Start: bl, End: br},
		{Start: tl, End: bl},
		{Start: tr, End: br},
	}
}

// SquareAt returns a size x size box centred on p.
func SquareAt(p Vec2, size float32) Rect {
	return Rect{X: p[0] - size/2, Y: p[1] - size/2, Width: size, Height: size}
}
