package editor

import (
	"math"

	"github.com/vsariola/rack"
)

// Snap rounds pos to the nearest grid unit horizontally and the nearest row
// vertically.
func (c *Config) Snap(pos rack.Vec) rack.Vec {
	return rack.Vec{
		X: float32(math.Round(float64(pos.X/c.GridUnit))) * c.GridUnit,
		Y: float32(math.Round(float64(pos.Y/c.RowHeight))) * c.RowHeight,
	}
}

// place finds the grid position for a module of the given size nearest to
// pos, such that the module lies within the canvas and overlaps no other
// module except the one with id ignore. Candidates are ordered by distance
// to the snapped pos, then by row, then by column, so the result is
// deterministic.
func (g *Graph) place(size rack.Vec, pos rack.Vec, ignore int) (rack.Vec, error) {
	want := g.cfg.Snap(pos)
	bounds := g.cfg.Bounds()
	cols := g.cfg.Columns - int(math.Round(float64(size.X/g.cfg.GridUnit)))
	rows := g.cfg.Rows - int(math.Ceil(float64(size.Y/g.cfg.RowHeight))) // last valid row index
	best, bestDist, found := rack.Vec{}, math.Inf(1), false
	for row := 0; row <= rows; row++ {
		for col := 0; col <= cols; col++ {
			p := rack.V(float32(col)*g.cfg.GridUnit, float32(row)*g.cfg.RowHeight)
			dx, dy := float64(p.X-want.X), float64(p.Y-want.Y)
			d := dx*dx + dy*dy
			// strictly smaller keeps the first candidate in row, column order
			if d >= bestDist {
				continue
			}
			r := rack.Rect{Pos: p, Size: size}
			if !r.Inside(bounds) || g.overlaps(r, ignore) {
				continue
			}
			best, bestDist, found = p, d, true
		}
	}
	if !found {
		return rack.Vec{}, ErrNoSpace
	}
	return best, nil
}

func (g *Graph) overlaps(r rack.Rect, ignore int) bool {
	for _, m := range g.modules {
		if m.ID != ignore && m.Box().Intersects(r) {
			return true
		}
	}
	return false
}

// Free reports whether a module of the given size could be placed at pos
// without moving it.
func (g *Graph) Free(pos, size rack.Vec, ignore int) bool {
	r := rack.Rect{Pos: pos, Size: size}
	return r.Inside(g.cfg.Bounds()) && !g.overlaps(r, ignore)
}
