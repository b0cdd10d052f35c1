package editor

import (
	"cmp"
	"slices"

	"github.com/vsariola/rack"
)

type (
	// Target is the thing under the pointer: nothing, the body of a module, a
	// port or a param.
	Target struct {
		Kind   TargetKind
		Module int
		Port   PortRef // if Kind == PortTarget
		Param  int     // if Kind == ParamTarget
	}

	TargetKind int
)

const (
	NoTarget TargetKind = iota
	ModuleTarget
	PortTarget
	ParamTarget
)

func PortAt(p PortRef) Target { return Target{Kind: PortTarget, Module: p.Module, Port: p} }

// HitTest returns the topmost thing at pos. Modules created later are on top.
func (g *Graph) HitTest(pos rack.Vec) Target {
	for _, m := range slices.Backward(g.modules) {
		if t, ok := m.hit(pos); ok {
			return t
		}
	}
	return Target{}
}

// PortsNear returns the ports of the given direction whose centers are within
// radius from pos, nearest first.
func (g *Graph) PortsNear(pos rack.Vec, dir Direction, radius float32) []PortRef {
	type candidate struct {
		ref  PortRef
		dist float32
	}
	var cs []candidate
	for _, m := range g.modules {
		for i := range m.NumPorts(dir) {
			c, _ := m.PortPos(dir, i)
			if d := c.Dist(pos); d <= radius {
				cs = append(cs, candidate{PortRef{m.ID, dir, i}, d})
			}
		}
	}
	slices.SortStableFunc(cs, func(a, b candidate) int { return cmp.Compare(a.dist, b.dist) })
	ret := make([]PortRef, len(cs))
	for i, c := range cs {
		ret[i] = c.ref
	}
	return ret
}
