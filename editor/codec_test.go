package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/rack"
	"github.com/vsariola/rack/editor"
)

// connection is a wire identified by the creation order of its modules, which
// survives the renumbering of a load.
type connection struct {
	outModule, outPort, inModule, inPort int
}

func connections(g *editor.Graph) []connection {
	order := map[int]int{}
	for m := range g.Modules() {
		order[m.ID] = len(order)
	}
	var ret []connection
	for w := range g.Wires() {
		ret = append(ret, connection{order[w.Out.Module], w.Out.Index, order[w.In.Module], w.In.Index})
	}
	return ret
}

func TestSerializeClearDeserialize(t *testing.T) {
	m := newTestModels(t)
	app := m.newApp()
	g := app.Graph()
	a := add(t, g, m.A, 0, 0)
	b := add(t, g, m.B, 300, 0)
	_, ok := g.Connect(editor.Out(a, 0), editor.In(b, 0))
	require.True(t, ok)
	doc := editor.Serialize(g)
	g.Clear()
	require.Equal(t, 0, g.NumModules())
	restored, warnings, err := editor.Deserialize(doc, m.reg, app.Config())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Equal(t, 2, restored.NumModules())
	require.Equal(t, 1, restored.NumWires())
	var ids []int
	for mod := range restored.Modules() {
		ids = append(ids, mod.ID)
	}
	assert.Equal(t, "A", mustModule(t, restored, ids[0]).Model.Slug)
	assert.Equal(t, "B", mustModule(t, restored, ids[1]).Model.Slug)
	w, ok := restored.InputWire(editor.In(ids[1], 0))
	require.True(t, ok)
	assert.Equal(t, editor.Out(ids[0], 0), w.Out)
}

func mustModule(t *testing.T, g *editor.Graph, id int) *editor.Module {
	t.Helper()
	m, ok := g.Module(id)
	require.True(t, ok)
	return m
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []editor.Format{editor.YAML, editor.JSON} {
		t.Run(format.String(), func(t *testing.T) {
			m := newTestModels(t)
			g := editor.NewGraph(editor.DefaultConfig())
			ab1 := add(t, g, m.AB, 0, 0)
			ab2 := add(t, g, m.AB, 0, 380)
			a := add(t, g, m.A, 900, 0)
			src := add(t, g, m.Source, 450, 760)
			mustModule(t, g, ab1).Params[knobParam].SetValue(1.2345)
			mustModule(t, g, ab2).Params[toggleParam].SetValue(2)
			mustModule(t, g, src).Params[0].SetValue(-7.25)
			g.Connect(editor.Out(ab1, 0), editor.In(ab2, 0))
			g.Connect(editor.Out(ab2, 0), editor.In(ab1, 0))
			g.Connect(editor.Out(a, 0), editor.In(ab2, 0))
			b, err := editor.Encode(editor.Serialize(g), format)
			require.NoError(t, err)
			doc, err := editor.Decode(b)
			require.NoError(t, err)
			restored, warnings, err := editor.Deserialize(doc, m.reg, editor.DefaultConfig())
			require.NoError(t, err)
			assert.Empty(t, warnings)
			require.Equal(t, g.NumModules(), restored.NumModules())
			var want, got []*editor.Module
			for mod := range g.Modules() {
				want = append(want, mod)
			}
			for mod := range restored.Modules() {
				got = append(got, mod)
			}
			for i := range want {
				assert.Equal(t, want[i].Model, got[i].Model)
				assert.Equal(t, want[i].Pos(), got[i].Pos())
				assert.InDeltaSlice(t, want[i].ParamValues(), got[i].ParamValues(), 1e-6)
			}
			assert.Equal(t, connections(g), connections(restored))
			assert.Equal(t, 2, mustModule(t, restored, got[1].ID).Params[toggleParam].DiscreteIndex())
			checkInvariants(t, restored)
		})
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	m := newTestModels(t)
	g := editor.NewGraph(editor.DefaultConfig())
	a := add(t, g, m.A, 0, 0)
	for i := range 5 {
		b := add(t, g, m.B, float32(100*(i+1)), 0)
		g.Connect(editor.Out(a, 0), editor.In(b, 0))
	}
	first, err := editor.Encode(editor.Serialize(g), editor.YAML)
	require.NoError(t, err)
	second, err := editor.Encode(editor.Serialize(g), editor.YAML)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDeserializeUnknownModel(t *testing.T) {
	m := newTestModels(t)
	doc := &rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{
			{ID: 10, Plugin: "Test", Model: "A"},
			{ID: 11, Plugin: "Nope", Model: "Missing", X: 300},
		},
		Wires: []rack.WireRecord{{OutputModuleID: 10, OutputPort: 0, InputModuleID: 11, InputPort: 0}},
	}
	g, warnings, err := editor.Deserialize(doc, m.reg, editor.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumModules())
	assert.Equal(t, 0, g.NumWires())
	require.Len(t, warnings, 1)
	var unknown *editor.UnknownModelError
	require.ErrorAs(t, warnings[0], &unknown)
	assert.Equal(t, 11, unknown.ModuleID)
	assert.Equal(t, "Nope", unknown.Plugin)
	assert.Equal(t, "Missing", unknown.Model)
}

func TestDeserializeDropsInvalidWires(t *testing.T) {
	m := newTestModels(t)
	doc := &rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{
			{ID: 1, Plugin: "Test", Model: "A"},
			{ID: 2, Plugin: "Test", Model: "B", X: 300},
		},
		Wires: []rack.WireRecord{
			{OutputModuleID: 1, OutputPort: 5, InputModuleID: 2, InputPort: 0},
			{OutputModuleID: 1, OutputPort: 0, InputModuleID: 2, InputPort: 0},
		},
	}
	g, warnings, err := editor.Deserialize(doc, m.reg, editor.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, g.NumWires())
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], editor.ErrInvalidConnection)
}

func TestDeserializeClampsParams(t *testing.T) {
	m := newTestModels(t)
	doc := &rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{{ID: 1, Plugin: "Test", Model: "AB", Params: []float32{100, 1, 0, 0, 42}}},
	}
	g, _, err := editor.Deserialize(doc, m.reg, editor.DefaultConfig())
	require.NoError(t, err)
	for mod := range g.Modules() {
		assert.Equal(t, []float32{10, 1, 0, 0}, mod.ParamValues())
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"garbage", "{{{"},
		{"missing version", "modules: []\nwires: []\n"},
		{"incompatible version", "version: 2.0.0\n"},
		{"module without plugin", "version: 1.0.0\nmodules:\n  - {id: 1, model: A}\n"},
		{"module without id", `{"version": "1.0.0", "modules": [{"plugin": "Test", "model": "A"}]}`},
		{"wire without input port", "version: 1.0.0\nmodules:\n  - {id: 1, plugin: Test, model: A}\n  - {id: 2, plugin: Test, model: B}\nwires:\n  - {outputModuleId: 1, outputPort: 0, inputModuleId: 2}\n"},
		{"duplicate ids", "version: 1.0.0\nmodules:\n  - {id: 1, plugin: Test, model: A}\n  - {id: 1, plugin: Test, model: B}\n"},
		{"bad color", "version: 1.0.0\nmodules:\n  - {id: 1, plugin: Test, model: A}\n  - {id: 2, plugin: Test, model: B}\nwires:\n  - {outputModuleId: 1, outputPort: 0, inputModuleId: 2, inputPort: 0, color: blue}\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := editor.Decode([]byte(tc.doc))
			var malformed *editor.MalformedDocumentError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDeserializeDropsDanglingWires(t *testing.T) {
	m := newTestModels(t)
	doc, err := editor.Decode([]byte(`{"version": "1.0.0",
		"modules": [{"id": 1, "plugin": "Test", "model": "A"}, {"id": 2, "plugin": "Test", "model": "B", "x": 300}],
		"wires": [
			{"outputModuleId": 1, "outputPort": 0, "inputModuleId": 99, "inputPort": 0},
			{"outputModuleId": 1, "outputPort": 0, "inputModuleId": 2, "inputPort": 0}
		]}`))
	require.NoError(t, err)
	g, warnings, err := editor.Deserialize(doc, m.reg, editor.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumModules())
	assert.Equal(t, 1, g.NumWires())
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], editor.ErrNoSuchModule)
}

func TestDeserializeWarnsAboutWiresOfUnplacedModules(t *testing.T) {
	m := newTestModels(t)
	cfg := editor.DefaultConfig()
	cfg.Columns, cfg.Rows = 8, 1
	doc := &rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{
			{ID: 1, Plugin: "Test", Model: "A"},
			{ID: 2, Plugin: "Test", Model: "A"},
			{ID: 3, Plugin: "Test", Model: "B"},
		},
		Wires: []rack.WireRecord{{OutputModuleID: 1, OutputPort: 0, InputModuleID: 3, InputPort: 0}},
	}
	g, warnings, err := editor.Deserialize(doc, m.reg, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumModules())
	assert.Equal(t, 0, g.NumWires())
	require.Len(t, warnings, 2)
	assert.ErrorIs(t, warnings[0], editor.ErrNoSpace)
	assert.ErrorIs(t, warnings[1], editor.ErrNoSpace)
	assert.Contains(t, warnings[1].Error(), "wire 0")
}

func TestDecodeAcceptsMinimalDocument(t *testing.T) {
	doc, err := editor.Decode([]byte("version: 1.2.0\nmodules:\n  - {id: 3, plugin: Test, model: A}\n  - {id: 4, plugin: Test, model: B, x: 300}\nwires:\n  - {outputModuleId: 3, outputPort: 0, inputModuleId: 4, inputPort: 0}\n"))
	require.NoError(t, err)
	require.Len(t, doc.Wires, 1)
	assert.Equal(t, editor.WirePalette[0], doc.Wires[0].Color, "missing color defaults to the palette")
	assert.Equal(t, float32(300), doc.Modules[1].X)
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, editor.JSON, editor.FormatOf("patch.JSON"))
	assert.Equal(t, editor.YAML, editor.FormatOf("patch.yml"))
	assert.Equal(t, editor.YAML, editor.FormatOf("patch"))
	f, err := editor.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, editor.YAML, f)
	_, err = editor.ParseFormat("xml")
	assert.Error(t, err)
}
