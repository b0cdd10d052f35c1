package editor

import (
	"iter"
	"slices"

	"github.com/vsariola/rack"
)

type (
	// Graph is the patch being edited: the modules and the wires between
	// them. It is owned by the GUI goroutine; nothing in it is safe for
	// concurrent use. The graph keeps the invariants that every wire ends in
	// modules of the same graph and that every input has at most one wire.
	Graph struct {
		cfg Config

		modules []*Module // in creation order
		byID    map[int]*Module
		wires   []*Wire // in creation order
		wireIDs map[int]*Wire
		inputs  map[PortRef]*Wire

		nextModuleID int
		nextWireID   int
		colorIndex   int

		listener GraphListener
	}

	// GraphListener gets notified of structural changes. ModuleRemoved takes
	// over the responsibility of destroying the module: the listener should
	// make sure the processing goroutine no longer uses the engine before
	// closing it. Without a listener, removed modules are destroyed
	// immediately.
	GraphListener interface {
		ModuleAdded(m *Module)
		ModuleRemoved(m *Module)
		WiresChanged()
	}
)

func NewGraph(cfg Config) *Graph {
	return &Graph{
		cfg:          cfg,
		byID:         make(map[int]*Module),
		wireIDs:      make(map[int]*Wire),
		inputs:       make(map[PortRef]*Wire),
		nextModuleID: 1,
		nextWireID:   1,
	}
}

func (g *Graph) SetListener(l GraphListener) { g.listener = l }
func (g *Graph) Config() Config              { return g.cfg }

// AddModule creates a new instance of the model, placed on the free grid spot
// nearest to pos. It returns the id of the new module.
func (g *Graph) AddModule(model *rack.Model, pos rack.Vec) (int, error) {
	m, err := newModule(g.nextModuleID, model, &g.cfg)
	if err != nil {
		return 0, err
	}
	p, err := g.place(m.size, pos, 0)
	if err != nil {
		m.close()
		return 0, err
	}
	m.pos = p
	g.nextModuleID++
	g.modules = append(g.modules, m)
	g.byID[m.ID] = m
	if g.listener != nil {
		g.listener.ModuleAdded(m)
	}
	return m.ID, nil
}

// MoveModule repositions a module, using the same placement rule as
// AddModule. On error, the module stays where it was.
func (g *Graph) MoveModule(id int, pos rack.Vec) error {
	m, ok := g.byID[id]
	if !ok {
		return ErrNoSuchModule
	}
	p, err := g.place(m.size, pos, id)
	if err != nil {
		return err
	}
	m.pos = p
	return nil
}

// RemoveModule disconnects all the wires of the module and then destroys it.
// It returns false if there was no such module.
func (g *Graph) RemoveModule(id int) bool {
	m, ok := g.byID[id]
	if !ok {
		return false
	}
	if g.removeWires(func(w *Wire) bool { return w.Touches(id) }) > 0 {
		g.wiresChanged()
	}
	g.modules = slices.DeleteFunc(g.modules, func(o *Module) bool { return o == m })
	delete(g.byID, id)
	g.destroy(m)
	return true
}

// Connect adds a wire from out to in, colored with the next palette color.
// An existing wire on in is removed first. An invalid connection is ignored
// and ok is false.
func (g *Graph) Connect(out, in PortRef) (id int, ok bool) {
	id, ok = g.ConnectColor(out, in, g.nextColor())
	if ok {
		g.colorIndex++
	}
	return id, ok
}

// ConnectColor is like Connect, but with an explicit color.
func (g *Graph) ConnectColor(out, in PortRef, color rack.Color) (int, bool) {
	if g.CanConnect(out, in) != nil {
		return 0, false
	}
	if old, ok := g.inputs[in]; ok {
		g.removeWire(old)
	}
	w := &Wire{ID: g.nextWireID, Out: out, In: in, Color: color}
	g.nextWireID++
	g.wires = append(g.wires, w)
	g.wireIDs[w.ID] = w
	g.inputs[in] = w
	g.wiresChanged()
	return w.ID, true
}

// Disconnect removes a wire. It returns false if there was no such wire.
func (g *Graph) Disconnect(id int) bool {
	w, ok := g.wireIDs[id]
	if !ok {
		return false
	}
	g.removeWire(w)
	g.wiresChanged()
	return true
}

// DisconnectPort removes all the wires on a port and returns how many there
// were.
func (g *Graph) DisconnectPort(p PortRef) int {
	n := g.removeWires(func(w *Wire) bool { return w.In == p || w.Out == p })
	if n > 0 {
		g.wiresChanged()
	}
	return n
}

// DisconnectModule removes all the wires touching the module.
func (g *Graph) DisconnectModule(id int) int {
	n := g.removeWires(func(w *Wire) bool { return w.Touches(id) })
	if n > 0 {
		g.wiresChanged()
	}
	return n
}

// Clear removes all the wires and then all the modules.
func (g *Graph) Clear() {
	if g.removeWires(func(*Wire) bool { return true }) > 0 {
		g.wiresChanged()
	}
	modules := g.modules
	g.modules = nil
	clear(g.byID)
	for _, m := range modules {
		g.destroy(m)
	}
}

// Modules iterates the modules in creation order.
func (g *Graph) Modules() iter.Seq[*Module] {
	return func(yield func(*Module) bool) {
		for _, m := range g.modules {
			if !yield(m) {
				return
			}
		}
	}
}

// Wires iterates the wires in creation order.
func (g *Graph) Wires() iter.Seq[*Wire] {
	return func(yield func(*Wire) bool) {
		for _, w := range g.wires {
			if !yield(w) {
				return
			}
		}
	}
}

func (g *Graph) NumModules() int { return len(g.modules) }
func (g *Graph) NumWires() int   { return len(g.wires) }

func (g *Graph) Module(id int) (*Module, bool) {
	m, ok := g.byID[id]
	return m, ok
}

func (g *Graph) Wire(id int) (*Wire, bool) {
	w, ok := g.wireIDs[id]
	return w, ok
}

// InputWire returns the wire plugged into an input port.
func (g *Graph) InputWire(in PortRef) (*Wire, bool) {
	w, ok := g.inputs[in]
	return w, ok
}

// WiresAt returns the wires on a port: at most one for an input, any number
// for an output.
func (g *Graph) WiresAt(p PortRef) []*Wire {
	if p.Dir == Input {
		if w, ok := g.inputs[p]; ok {
			return []*Wire{w}
		}
		return nil
	}
	var ret []*Wire
	for _, w := range g.wires {
		if w.Out == p {
			ret = append(ret, w)
		}
	}
	return ret
}

// PortPos returns the canvas position of a port.
func (g *Graph) PortPos(p PortRef) (rack.Vec, bool) {
	m, ok := g.byID[p.Module]
	if !ok {
		return rack.Vec{}, false
	}
	return m.PortPos(p.Dir, p.Index)
}

func (g *Graph) removeWire(w *Wire) {
	g.wires = slices.DeleteFunc(g.wires, func(o *Wire) bool { return o == w })
	delete(g.wireIDs, w.ID)
	if g.inputs[w.In] == w {
		delete(g.inputs, w.In)
	}
}

func (g *Graph) removeWires(match func(*Wire) bool) int {
	n := 0
	g.wires = slices.DeleteFunc(g.wires, func(w *Wire) bool {
		if !match(w) {
			return false
		}
		delete(g.wireIDs, w.ID)
		delete(g.inputs, w.In)
		n++
		return true
	})
	return n
}

func (g *Graph) wiresChanged() {
	if g.listener != nil {
		g.listener.WiresChanged()
	}
}

func (g *Graph) destroy(m *Module) {
	if g.listener != nil {
		g.listener.ModuleRemoved(m)
		return
	}
	m.close()
}
