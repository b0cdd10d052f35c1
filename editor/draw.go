package editor

import "github.com/vsariola/rack"

type (
	// Surface receives the drawing instructions of one frame. The editor never
	// draws pixels itself; the GUI implements Surface.
	Surface interface {
		Module(m *Module, box rack.Rect, dragged bool)
		Param(m *Module, p *Param, center rack.Vec, active bool)
		Port(p PortRef, center rack.Vec, state PortState)
		// Wire draws a quadratic curve from from to to, with control point
		// ctrl.
		Wire(from, ctrl, to rack.Vec, color rack.Color, opacity float32, highlight bool)
	}

	PortState int
)

const (
	PortFree PortState = iota
	PortConnected
	PortHovered
)

// WireCurve returns the control point of the curve of a wire between from
// and to. The lower the tension, the more the wire sags.
func WireCurve(from, to rack.Vec, tension float32) rack.Vec {
	dist := from.Dist(to)
	slump := rack.V(0, (1-tension)*(150+dist))
	return from.Add(to).Mul(0.5).Add(slump)
}

// Draw emits the modules, then the wires on top of them, and last the wire
// being dragged.
func (c *Controller) Draw(s Surface) {
	g := c.graph
	draggedID, requested, dragging := c.DraggedModule()
	activeModule, activeParam, paramActive := c.ActiveParam()
	hover, hovering := c.Hover()
	offset := func(id int) rack.Vec {
		if dragging && id == draggedID {
			m, _ := g.Module(id)
			return requested.Sub(m.Pos())
		}
		return rack.Vec{}
	}
	portPos := func(p PortRef) (rack.Vec, bool) {
		pos, ok := g.PortPos(p)
		return pos.Add(offset(p.Module)), ok
	}
	for m := range g.Modules() {
		d := offset(m.ID)
		s.Module(m, m.Box().Translate(d), dragging && m.ID == draggedID)
		for i, p := range m.Params {
			s.Param(m, p, m.Pos().Add(p.Spec.Pos).Add(d), paramActive && activeModule == m.ID && activeParam == i)
		}
		for _, dir := range [...]Direction{Input, Output} {
			for i := range m.NumPorts(dir) {
				ref := PortRef{m.ID, dir, i}
				pos, _ := portPos(ref)
				state := PortFree
				switch {
				case hovering && hover == ref:
					state = PortHovered
				case len(g.WiresAt(ref)) > 0:
					state = PortConnected
				}
				s.Port(ref, pos, state)
			}
		}
	}
	for w := range g.Wires() {
		from, ok1 := portPos(w.Out)
		to, ok2 := portPos(w.In)
		if !ok1 || !ok2 {
			continue
		}
		s.Wire(from, WireCurve(from, to, c.cfg.WireTension), to, w.Color, c.cfg.WireOpacity, false)
	}
	if fixed, end, color, ok := c.LooseWire(); ok {
		from, ok := portPos(fixed)
		if !ok {
			return
		}
		if hovering {
			end, _ = portPos(hover)
		}
		// the loose wire is drawn from output to input like the others
		a, b := from, end
		if fixed.Dir == Input {
			a, b = end, from
		}
		s.Wire(a, WireCurve(a, b, c.cfg.WireTension), b, color, 1, true)
	}
}
