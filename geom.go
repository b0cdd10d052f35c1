package rack

import "math"

type (
	// Vec is a point or a displacement on the canvas, in pixels.
	Vec struct {
		X, Y float32
	}

	// Rect is an axis aligned rectangle; Pos is the top-left corner. Max edges
	// are exclusive, so two modules side by side do not intersect.
	Rect struct {
		Pos  Vec
		Size Vec
	}
)

func V(x, y float32) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec         { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec         { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(s float32) Vec     { return Vec{v.X * s, v.Y * s} }
func (v Vec) Norm() float32         { return float32(math.Hypot(float64(v.X), float64(v.Y))) }
func (v Vec) Dist(o Vec) float32    { return v.Sub(o).Norm() }
func (r Rect) Max() Vec             { return r.Pos.Add(r.Size) }
func (r Rect) Center() Vec          { return r.Pos.Add(r.Size.Mul(0.5)) }
func (r Rect) Translate(d Vec) Rect { return Rect{Pos: r.Pos.Add(d), Size: r.Size} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec) bool {
	m := r.Max()
	return p.X >= r.Pos.X && p.Y >= r.Pos.Y && p.X < m.X && p.Y < m.Y
}

// Intersects reports whether r and o overlap with a non-zero area.
func (r Rect) Intersects(o Rect) bool {
	rm, om := r.Max(), o.Max()
	return r.Pos.X < om.X && o.Pos.X < rm.X && r.Pos.Y < om.Y && o.Pos.Y < rm.Y
}

// Inside reports whether r lies completely within outer.
func (r Rect) Inside(outer Rect) bool {
	rm, om := r.Max(), outer.Max()
	return r.Pos.X >= outer.Pos.X && r.Pos.Y >= outer.Pos.Y && rm.X <= om.X && rm.Y <= om.Y
}
