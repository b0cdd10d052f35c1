package editor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

type (
	// closeCounter counts how many engines of the test models have been
	// closed.
	closeCounter struct{ closed int }

	nullEngine struct{ counter *closeCounter }

	// sourceEngine outputs the value of its only param.
	sourceEngine struct{ nullEngine }

	// sinkEngine plays its input to both channels.
	sinkEngine struct {
		nullEngine
		last float32
	}

	testModels struct {
		counter *closeCounter
		reg     *rack.Registry
		A, B    *rack.Model // A has one output, B one input
		AB      *rack.Model // ports both ways and one param of each kind
		Source  *rack.Model
		Sink    *rack.Model
	}
)

const (
	knobParam = iota
	toggleParam
	momentaryParam
	modeParam
)

func (e nullEngine) Step(*rack.ModuleIO, float32) {}
func (e nullEngine) Close() error {
	e.counter.closed++
	return nil
}

func (e sourceEngine) Step(io *rack.ModuleIO, dt float32) { io.SetOutput(0, io.Param(0)) }

func (e *sinkEngine) Step(io *rack.ModuleIO, dt float32) { e.last = io.Input(0) }
func (e *sinkEngine) Frame() [2]float32                  { return [2]float32{e.last, e.last} }

func newTestModels(t *testing.T) *testModels {
	t.Helper()
	c := &closeCounter{}
	null := func() rack.Engine { return nullEngine{c} }
	m := &testModels{counter: c, reg: rack.NewRegistry()}
	m.A = &rack.Model{Plugin: "Test", Slug: "A", Name: "A", New: null, Panel: rack.Panel{
		Width:   4,
		Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(30, 300)}},
	}}
	m.B = &rack.Model{Plugin: "Test", Slug: "B", Name: "B", New: null, Panel: rack.Panel{
		Width:  4,
		Inputs: []rack.PortSpec{{Name: "in", Pos: rack.V(30, 300)}},
	}}
	m.AB = &rack.Model{Plugin: "Test", Slug: "AB", Name: "AB", New: null, Panel: rack.Panel{
		Width:   4,
		Inputs:  []rack.PortSpec{{Name: "in", Pos: rack.V(20, 300)}},
		Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(40, 340)}},
		Params: []rack.ParamSpec{
			{Name: "knob", Min: 0, Max: 10, Default: 5, Pos: rack.V(30, 60)},
			{Name: "toggle", Max: 2, Kind: rack.Toggle, Pos: rack.V(30, 110)},
			{Name: "momentary", Max: 1, Kind: rack.Momentary, Pos: rack.V(30, 160)},
			{Name: "mode", Max: 2, Kind: rack.Mode, Pos: rack.V(30, 210)},
		},
	}}
	m.Source = &rack.Model{Plugin: "Test", Slug: "Source", Name: "Source", New: func() rack.Engine { return sourceEngine{nullEngine{c}} }, Panel: rack.Panel{
		Width:   4,
		Params:  []rack.ParamSpec{{Name: "value", Min: -10, Max: 10, Default: 3, Pos: rack.V(30, 60)}},
		Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(30, 300)}},
	}}
	m.Sink = &rack.Model{Plugin: "Test", Slug: "Sink", Name: "Sink", New: func() rack.Engine { return &sinkEngine{nullEngine: nullEngine{c}} }, Panel: rack.Panel{
		Width:  4,
		Inputs: []rack.PortSpec{{Name: "in", Pos: rack.V(30, 300)}},
	}}
	require.NoError(t, m.reg.Register(m.A, m.B, m.AB, m.Source, m.Sink))
	return m
}

func (m *testModels) newApp(opts ...editor.Option) *editor.App {
	return editor.NewApp(m.reg, nil, opts...)
}

// add adds a module and fails the test if it could not be placed.
func add(t *testing.T, g *editor.Graph, model *rack.Model, x, y float32) int {
	t.Helper()
	id, err := g.AddModule(model, rack.V(x, y))
	require.NoError(t, err)
	return id
}

func portPos(t *testing.T, g *editor.Graph, p editor.PortRef) rack.Vec {
	t.Helper()
	pos, ok := g.PortPos(p)
	require.True(t, ok, "no port %v", p)
	return pos
}

func paramTarget(module, param int) editor.Target {
	return editor.Target{Kind: editor.ParamTarget, Module: module, Param: param}
}

func moduleTarget(module int) editor.Target {
	return editor.Target{Kind: editor.ModuleTarget, Module: module}
}

// checkInvariants fails the test if a wire refers to a module not in the
// graph or if an input has more than one wire.
func checkInvariants(t *testing.T, g *editor.Graph) {
	t.Helper()
	inputs := map[editor.PortRef]int{}
	for w := range g.Wires() {
		for _, p := range []editor.PortRef{w.Out, w.In} {
			if _, ok := g.Module(p.Module); !ok {
				t.Errorf("%v refers to module %d, which is not in the graph", w, p.Module)
			}
		}
		inputs[w.In]++
		if inputs[w.In] > 1 {
			t.Errorf("input %v has %d wires", w.In, inputs[w.In])
		}
	}
	cfg := g.Config()
	for m := range g.Modules() {
		box := m.Box()
		if !box.Inside(cfg.Bounds()) {
			t.Errorf("module %d at %v is outside the canvas", m.ID, box)
		}
		for o := range g.Modules() {
			if o != m && o.Box().Intersects(box) {
				t.Errorf("modules %d and %d overlap", m.ID, o.ID)
			}
		}
	}
}
