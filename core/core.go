// Package core provides the built-in Core plugin: a handful of simple modules
// so that a patch can be built and heard without any other plugins.
package core

import (
	"math"
	"strconv"

	"github.com/vsariola/rack"
	"github.com/viterin/vek/vek32"
)

// Plugin is the plugin identifier of all the models in this package.
const Plugin = "Core"

var waveNames = [...]string{"sine", "saw", "square", "triangle"}

// Models returns new descriptors of all the Core models, in the order they
// should appear in the module browser.
func Models() []*rack.Model {
	return []*rack.Model{
		{
			Plugin: Plugin, Slug: "VCO", Name: "VCO",
			Panel: rack.Panel{
				Width:   6,
				Params:  []rack.ParamSpec{{Name: "freq", Min: -54, Max: 54, Pos: rack.V(45, 80), DisplayFunc: semitoneDisplay}, {Name: "wave", Max: 3, Kind: rack.Toggle, Pos: rack.V(45, 160), DisplayFunc: waveDisplay}},
				Inputs:  []rack.PortSpec{{Name: "v/oct", Pos: rack.V(25, 300)}},
				Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(65, 300)}},
			},
			New: func() rack.Engine { return &vco{} },
		},
		{
			Plugin: Plugin, Slug: "LFO", Name: "LFO",
			Panel: rack.Panel{
				Width:   4,
				Params:  []rack.ParamSpec{{Name: "rate", Min: -8, Max: 6, Default: 1, Pos: rack.V(30, 80), DisplayFunc: hertzDisplay}, {Name: "wave", Max: 3, Kind: rack.Toggle, Pos: rack.V(30, 160), DisplayFunc: waveDisplay}},
				Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(30, 300)}},
			},
			New: func() rack.Engine { return &lfo{} },
		},
		{
			Plugin: Plugin, Slug: "VCA", Name: "VCA",
			Panel: rack.Panel{
				Width:   4,
				Params:  []rack.ParamSpec{{Name: "level", Max: 1, Default: 1, Pos: rack.V(30, 80)}},
				Inputs:  []rack.PortSpec{{Name: "in", Pos: rack.V(30, 200)}, {Name: "cv", Pos: rack.V(30, 250)}},
				Outputs: []rack.PortSpec{{Name: "out", Pos: rack.V(30, 320)}},
			},
			New: func() rack.Engine { return &vca{} },
		},
		{
			Plugin: Plugin, Slug: "Mixer", Name: "Mixer",
			Panel:  mixerPanel(),
			New:    func() rack.Engine { return &mixer{} },
		},
		{
			Plugin: Plugin, Slug: "Gate", Name: "Gate",
			Panel: rack.Panel{
				Width: 4,
				Params: []rack.ParamSpec{
					{Name: "push", Max: 1, Kind: rack.Momentary, Pos: rack.V(30, 80)},
					{Name: "latch", Max: 1, Kind: rack.Mode, Pos: rack.V(30, 160)},
				},
				Outputs: []rack.PortSpec{{Name: "gate", Pos: rack.V(30, 300)}},
			},
			New: func() rack.Engine { return &gate{} },
		},
		{
			Plugin: Plugin, Slug: "Output", Name: "Audio Output",
			Panel: rack.Panel{
				Width:  4,
				Params: []rack.ParamSpec{{Name: "mute", Max: 1, Kind: rack.Toggle, Pos: rack.V(30, 80)}},
				Inputs: []rack.PortSpec{{Name: "left", Pos: rack.V(30, 250)}, {Name: "right", Pos: rack.V(30, 310)}},
			},
			New: func() rack.Engine { return &output{} },
		},
	}
}

// Register adds the Core models into r.
func Register(r *rack.Registry) error {
	return r.Register(Models()...)
}

const mixerChannels = 4

func mixerPanel() rack.Panel {
	p := rack.Panel{Width: 8, Outputs: []rack.PortSpec{{Name: "mix", Pos: rack.V(90, 330)}}}
	for i := range mixerChannels {
		y := float32(60 + i*60)
		p.Params = append(p.Params, rack.ParamSpec{Name: "level" + strconv.Itoa(i+1), Max: 1, Default: 0.5, Pos: rack.V(90, y)})
		p.Inputs = append(p.Inputs, rack.PortSpec{Name: "in" + strconv.Itoa(i+1), Pos: rack.V(30, y)})
	}
	return p
}

func waveDisplay(v float32) (string, string) {
	i := int(math.Round(float64(v)))
	if i < 0 || i >= len(waveNames) {
		return "???", ""
	}
	return waveNames[i], ""
}

func semitoneDisplay(v float32) (string, string) {
	return strconv.FormatFloat(float64(v), 'f', 1, 32), "st"
}

func hertzDisplay(v float32) (string, string) {
	return strconv.FormatFloat(math.Exp2(float64(v)), 'f', 2, 64), "Hz"
}

// shape evaluates the waveform at phase in [0, 1), returning [-1, 1].
func shape(wave int, phase float32) float32 {
	switch wave {
	case 1:
		return 2*phase - 1
	case 2:
		if phase < 0.5 {
			return 1
		}
		return -1
	case 3:
		return 1 - 4*float32(math.Abs(float64(phase-0.5)))
	}
	return float32(math.Sin(2 * math.Pi * float64(phase)))
}

func advance(phase, freq, dt float32) float32 {
	phase += freq * dt
	return phase - float32(math.Floor(float64(phase)))
}

type vco struct{ phase float32 }

func (o *vco) Step(io *rack.ModuleIO, dt float32) {
	pitch := io.Param(0)/12 + io.Input(0)
	freq := 261.626 * float32(math.Exp2(float64(pitch)))
	o.phase = advance(o.phase, freq, dt)
	io.SetOutput(0, 5*shape(int(io.Param(1)), o.phase))
}

type lfo struct{ phase float32 }

func (o *lfo) Step(io *rack.ModuleIO, dt float32) {
	freq := float32(math.Exp2(float64(io.Param(0))))
	o.phase = advance(o.phase, freq, dt)
	io.SetOutput(0, 5*shape(int(io.Param(1)), o.phase))
}

type vca struct{}

func (vca) Step(io *rack.ModuleIO, dt float32) {
	gain := io.Param(0)
	if len(io.Inputs) > 1 {
		// an unpatched cv input reads 0, which would silence the module
		if cv := io.Input(1); cv != 0 {
			gain *= max(min(cv/10, 1), 0)
		}
	}
	io.SetOutput(0, gain*io.Input(0))
}

type mixer struct {
	in, levels [mixerChannels]float32
}

func (m *mixer) Step(io *rack.ModuleIO, dt float32) {
	for i := range mixerChannels {
		m.in[i] = io.Input(i)
		m.levels[i] = io.Param(i)
	}
	io.SetOutput(0, vek32.Dot(m.in[:], m.levels[:]))
}

type gate struct{}

func (gate) Step(io *rack.ModuleIO, dt float32) {
	if io.Param(0) > 0 || io.Param(1) > 0 {
		io.SetOutput(0, 10)
	} else {
		io.SetOutput(0, 0)
	}
}

type output struct {
	frame [2]float32
}

func (o *output) Step(io *rack.ModuleIO, dt float32) {
	if io.Param(0) > 0 {
		o.frame = [2]float32{}
		return
	}
	// modules work with +-5 V signals, the audio device with +-1
	o.frame = [2]float32{io.Input(0) / 5, io.Input(1) / 5}
}

func (o *output) Frame() [2]float32 { return o.frame }
