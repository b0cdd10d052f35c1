package rack_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsariola/rack"
	"gopkg.in/yaml.v3"
)

func TestColorText(t *testing.T) {
	c := rack.RGBA(0xc9, 0x18, 0x47, 0xff)
	assert.Equal(t, "#c91847ff", c.String())
	parsed, err := rack.ParseColor("#c91847")
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
	_, err = rack.ParseColor("#c918")
	assert.Error(t, err)
	_, err = rack.ParseColor("zzzzzz")
	assert.Error(t, err)
}

func TestPatchYAMLAndJSONAgree(t *testing.T) {
	p := rack.Patch{
		Version: rack.DocumentVersion,
		Modules: []rack.ModuleRecord{
			{ID: 1, Plugin: "Core", Model: "VCO", X: 0, Y: 0, Params: []float32{0.5}},
			{ID: 2, Plugin: "Core", Model: "Output", X: 120, Y: 0, Params: []float32{0}},
		},
		Wires: []rack.WireRecord{
			{OutputModuleID: 1, OutputPort: 0, InputModuleID: 2, InputPort: 1, Color: rack.RGBA(1, 2, 3, 4)},
		},
	}
	y, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(y), "outputModuleId: 1")
	assert.Contains(t, string(y), "'#01020304'")
	var fromYAML rack.Patch
	require.NoError(t, yaml.Unmarshal(y, &fromYAML))
	j, err := json.Marshal(p)
	require.NoError(t, err)
	var fromJSON rack.Patch
	require.NoError(t, json.Unmarshal(j, &fromJSON))
	assert.Equal(t, p, fromYAML)
	assert.Equal(t, p, fromJSON)
}

func TestPatchCopyIsDeep(t *testing.T) {
	p := rack.Patch{Version: "1.0.0", Modules: []rack.ModuleRecord{{ID: 1, Params: []float32{1, 2}}}}
	c := p.Copy()
	c.Modules[0].Params[0] = 42
	assert.Equal(t, float32(1), p.Modules[0].Params[0])
}

func TestCheckVersion(t *testing.T) {
	for _, tc := range []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1.4.2", true},
		{"1", true},
		{"2.0.0", false},
		{"0.9.0", false},
		{"banana", false},
		{"", false},
	} {
		p := rack.Patch{Version: tc.version}
		err := p.CheckVersion()
		if tc.ok {
			assert.NoError(t, err, tc.version)
		} else {
			assert.Error(t, err, tc.version)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := rack.NewRegistry()
	a := &rack.Model{Plugin: "P", Slug: "A", New: func() rack.Engine { return nil }}
	b := &rack.Model{Plugin: "P", Slug: "B"}
	require.NoError(t, r.Register(a, b))
	assert.Error(t, r.Register(&rack.Model{Plugin: "P", Slug: "A"}))
	assert.Error(t, r.Register(&rack.Model{Slug: "C"}))
	m, ok := r.Find("P", "B")
	assert.True(t, ok)
	assert.Same(t, b, m)
	_, ok = r.Find("Q", "B")
	assert.False(t, ok)
	var slugs []string
	for m := range r.Models() {
		slugs = append(slugs, m.Slug)
	}
	assert.Equal(t, []string{"A", "B"}, slugs)
	assert.Nil(t, r.At(2))
	_, _, err := a.Create()
	assert.Error(t, err, "nil engine should be an error")
	_, _, err = b.Create()
	assert.Error(t, err, "missing factory should be an error")
}

func TestParamSpecSteps(t *testing.T) {
	toggle := rack.ParamSpec{Min: 0, Max: 3, Kind: rack.Toggle}
	assert.Equal(t, float32(1), toggle.StepSize())
	assert.True(t, toggle.Discrete())
	spaced := rack.ParamSpec{Min: 0, Max: 1, Steps: 5, Kind: rack.Toggle}
	assert.InDelta(t, 0.25, spaced.StepSize(), 1e-6)
	knob := rack.ParamSpec{Min: -1, Max: 1}
	assert.False(t, knob.Discrete())
	assert.Equal(t, float32(1), knob.Clamp(3))
	assert.Equal(t, float32(-1), knob.Clamp(-3))
}

func TestModuleIODefaults(t *testing.T) {
	panel := rack.Panel{
		Inputs:  []rack.PortSpec{{Name: "in"}},
		Outputs: []rack.PortSpec{{Name: "out"}, {Name: "out2"}},
		Params:  []rack.ParamSpec{{Name: "a", Max: 1, Default: 0.25}},
	}
	io := rack.NewModuleIO(&panel)
	assert.Len(t, io.Inputs, 1)
	assert.Len(t, io.Outputs, 2)
	assert.Equal(t, float32(0.25), io.Param(0))
	assert.Equal(t, float32(0), io.Param(5))
	io.SetOutput(1, 3)
	io.SetOutput(9, 3)
	assert.Equal(t, float32(3), io.Outputs[1].Load())
}

func TestWavLength(t *testing.T) {
	buf := rack.AudioBuffer{{0.5, -0.5}, {1, -1}}
	b, err := buf.Wav(true)
	require.NoError(t, err)
	assert.Len(t, b, 44+len(buf)*2*2)
	raw, err := buf.Raw(false)
	require.NoError(t, err)
	assert.Len(t, raw, len(buf)*2*4)
}

func TestRectGeometry(t *testing.T) {
	a := rack.Rect{Pos: rack.V(0, 0), Size: rack.V(30, 380)}
	b := rack.Rect{Pos: rack.V(30, 0), Size: rack.V(30, 380)}
	assert.False(t, a.Intersects(b), "touching edges do not overlap")
	assert.True(t, a.Intersects(b.Translate(rack.V(-1, 0))))
	assert.True(t, a.Contains(rack.V(0, 0)))
	assert.False(t, a.Contains(rack.V(30, 0)))
	assert.True(t, a.Inside(rack.Rect{Size: rack.V(100, 400)}))
	assert.False(t, b.Inside(rack.Rect{Size: rack.V(50, 400)}))
}
