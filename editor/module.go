package editor

import (
	"fmt"
	"io"
	"math"

	"github.com/vsariola/rack"
)

type (
	// Module is a module instance placed in a Graph. It owns its engine
	// exclusively: the engine is closed when the module is destroyed, never
	// earlier.
	Module struct {
		ID     int
		Model  *rack.Model
		Params []*Param

		pos    rack.Vec
		size   rack.Vec
		engine rack.Engine
		io     *rack.ModuleIO
	}

	// Direction tells whether a port is an input or an output.
	Direction int

	// PortRef identifies a port by the id of its module, its direction and
	// its index within the ports of that direction. PortRefs are comparable
	// and used as map keys.
	PortRef struct {
		Module int
		Dir    Direction
		Index  int
	}
)

const (
	Input Direction = iota
	Output
)

const (
	// portRadius and paramRadius are the radii of the clickable areas of
	// ports and params, in pixels.
	portRadius  = 12
	paramRadius = 18
)

func In(module, index int) PortRef  { return PortRef{Module: module, Dir: Input, Index: index} }
func Out(module, index int) PortRef { return PortRef{Module: module, Dir: Output, Index: index} }

func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

func (p PortRef) String() string {
	return fmt.Sprintf("module %d %s %d", p.Module, p.Dir, p.Index)
}

func newModule(id int, model *rack.Model, cfg *Config) (*Module, error) {
	engine, panel, err := model.Create()
	if err != nil {
		return nil, err
	}
	values := rack.NewModuleIO(panel)
	m := &Module{
		ID:     id,
		Model:  model,
		size:   model.Size(cfg.GridUnit, cfg.RowHeight),
		engine: engine,
		io:     values,
		Params: make([]*Param, len(panel.Params)),
	}
	for i := range panel.Params {
		m.Params[i] = newParam(&panel.Params[i], &values.Params[i])
	}
	return m, nil
}

func (m *Module) Pos() rack.Vec       { return m.pos }
func (m *Module) Size() rack.Vec      { return m.size }
func (m *Module) Box() rack.Rect      { return rack.Rect{Pos: m.pos, Size: m.size} }
func (m *Module) Engine() rack.Engine { return m.engine }
func (m *Module) IO() *rack.ModuleIO  { return m.io }

// NumPorts returns the number of ports in the given direction.
func (m *Module) NumPorts(dir Direction) int {
	if dir == Input {
		return len(m.Model.Panel.Inputs)
	}
	return len(m.Model.Panel.Outputs)
}

// PortSpec returns the description of a port, or false if the index is out of
// range.
func (m *Module) PortSpec(dir Direction, index int) (*rack.PortSpec, bool) {
	ports := m.Model.Panel.Inputs
	if dir == Output {
		ports = m.Model.Panel.Outputs
	}
	if index < 0 || index >= len(ports) {
		return nil, false
	}
	return &ports[index], true
}

// PortPos returns the canvas position of the center of a port.
func (m *Module) PortPos(dir Direction, index int) (rack.Vec, bool) {
	s, ok := m.PortSpec(dir, index)
	if !ok {
		return rack.Vec{}, false
	}
	return m.pos.Add(s.Pos), true
}

// Signal returns the latest value of a port, for metering.
func (m *Module) Signal(dir Direction, index int) float32 {
	if dir == Input {
		return m.io.Input(index)
	}
	if index < 0 || index >= len(m.io.Outputs) {
		return 0
	}
	return m.io.Outputs[index].Load()
}

// ResetParams sets all the params to their defaults.
func (m *Module) ResetParams() {
	for _, p := range m.Params {
		p.Reset()
	}
}

// ParamValues returns a copy of the current parameter values.
func (m *Module) ParamValues() []float32 {
	ret := make([]float32, len(m.Params))
	for i, p := range m.Params {
		ret[i] = p.Value()
	}
	return ret
}

// SetParamValues restores parameter values, e.g. from a saved patch. Values
// are clamped; extra values are ignored and missing ones keep their current
// value.
func (m *Module) SetParamValues(values []float32) {
	for i, v := range values {
		if i >= len(m.Params) {
			return
		}
		if math.IsNaN(float64(v)) {
			continue
		}
		m.Params[i].SetValue(v)
	}
}

// hit returns what is under p, in the order ports, params, body.
func (m *Module) hit(p rack.Vec) (Target, bool) {
	if !m.Box().Contains(p) {
		return Target{}, false
	}
	for _, dir := range [...]Direction{Input, Output} {
		for i := range m.NumPorts(dir) {
			if c, _ := m.PortPos(dir, i); c.Dist(p) <= portRadius {
				return Target{Kind: PortTarget, Module: m.ID, Port: PortRef{m.ID, dir, i}}, true
			}
		}
	}
	for i, param := range m.Params {
		if m.pos.Add(param.Spec.Pos).Dist(p) <= paramRadius {
			return Target{Kind: ParamTarget, Module: m.ID, Param: i}, true
		}
	}
	return Target{Kind: ModuleTarget, Module: m.ID}, true
}

// close destroys the engine. It must only be called once nothing else can
// call Step on it anymore.
func (m *Module) close() error {
	e := m.engine
	m.engine = nil
	if c, ok := e.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
