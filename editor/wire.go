package editor

import (
	"fmt"

	"github.com/vsariola/rack"
)

// Wire connects an output port to an input port of another module.
type Wire struct {
	ID    int
	Out   PortRef
	In    PortRef
	Color rack.Color
}

// WirePalette is cycled through when new wires are created.
var WirePalette = []rack.Color{
	rack.RGBA(0xc9, 0xb7, 0x0e, 0xff),
	rack.RGBA(0xc9, 0x18, 0x47, 0xff),
	rack.RGBA(0x0c, 0x8e, 0x15, 0xff),
	rack.RGBA(0x09, 0x86, 0xad, 0xff),
	rack.RGBA(0xaa, 0x75, 0x9f, 0xff),
}

// Ends returns the wire's two ports, output first.
func (w *Wire) Ends() (PortRef, PortRef) { return w.Out, w.In }

// Touches reports whether either end of the wire is on the given module.
func (w *Wire) Touches(module int) bool {
	return w.Out.Module == module || w.In.Module == module
}

func (w *Wire) String() string {
	return fmt.Sprintf("wire %d (%v -> %v)", w.ID, w.Out, w.In)
}

// Orient returns a and b as an (output, input) pair, in whichever order they
// were given. ok is false if they have the same direction.
func Orient(a, b PortRef) (out, in PortRef, ok bool) {
	switch {
	case a.Dir == Output && b.Dir == Input:
		return a, b, true
	case a.Dir == Input && b.Dir == Output:
		return b, a, true
	}
	return a, b, false
}

// CanConnect checks whether a wire from out to in would be valid. The
// returned error wraps ErrInvalidConnection.
func (g *Graph) CanConnect(out, in PortRef) error {
	invalid := func(reason string) error {
		return fmt.Errorf("%w: %v to %v: %s", ErrInvalidConnection, out, in, reason)
	}
	if out.Dir == in.Dir {
		return invalid("both ports are " + out.Dir.String() + "s")
	}
	if out.Dir != Output {
		return invalid("ports given in the wrong order")
	}
	if out.Module == in.Module {
		return invalid("ports are on the same module")
	}
	for _, p := range [...]PortRef{out, in} {
		m, ok := g.byID[p.Module]
		if !ok {
			return invalid(fmt.Sprintf("module %d is not in the patch", p.Module))
		}
		if _, ok := m.PortSpec(p.Dir, p.Index); !ok {
			return invalid(fmt.Sprintf("module %d has no %v", p.Module, p))
		}
	}
	if w, ok := g.inputs[in]; ok && w.Out == out {
		return invalid("already connected")
	}
	return nil
}

// nextColor returns the color the next new wire gets.
func (g *Graph) nextColor() rack.Color {
	return WirePalette[g.colorIndex%len(WirePalette)]
}
