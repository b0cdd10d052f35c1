package editor

import (
	"math"

	"github.com/vsariola/rack"
)

type (
	// Param is a parameter control of a module. The value lives in the
	// ModuleIO shared with the engine, so writes are visible to the
	// processing goroutine without locks.
	Param struct {
		Spec     *rack.ParamSpec
		value    *rack.Value
		index    int
		behavior Behavior
	}

	// Switch is what the switch behaviors need from a control: the value and
	// the discrete index, which tells the GUI which frame of the switch to
	// show.
	Switch interface {
		Value() float32
		SetValue(float32)
		SetDiscreteIndex(int)
		Limits() (min, max, step float32)
	}

	// Behavior is the interactive behavior of a switch. Press is called when
	// the pointer goes down on the switch, Release when the drag started on it
	// ends and Drop when that drag ends on the same switch.
	Behavior interface {
		Press(s Switch)
		Release(s Switch)
		Drop(s Switch)
	}

	toggleCycle struct{}
	momentary   struct{}
	modeLatch   struct{}
)

var behaviors = map[rack.ParamKind]Behavior{
	rack.Toggle:    toggleCycle{},
	rack.Momentary: momentary{},
	rack.Mode:      modeLatch{},
}

func newParam(spec *rack.ParamSpec, value *rack.Value) *Param {
	p := &Param{Spec: spec, value: value, behavior: behaviors[spec.Kind]}
	p.SetValue(value.Load())
	return p
}

func (p *Param) Value() float32 { return p.value.Load() }

// SetValue clamps v to the range of the param and stores it. For toggles the
// discrete index follows the value.
func (p *Param) SetValue(v float32) {
	v = p.Spec.Clamp(v)
	p.value.Store(v)
	if p.Spec.Kind == rack.Toggle {
		p.index = stepIndex(p, v)
	}
}

func (p *Param) DiscreteIndex() int     { return p.index }
func (p *Param) SetDiscreteIndex(i int) { p.index = i }

func (p *Param) Limits() (min, max, step float32) {
	return p.Spec.Min, p.Spec.Max, p.Spec.StepSize()
}

// Behavior returns the switch behavior of the param, or nil for knobs.
func (p *Param) Behavior() Behavior { return p.behavior }

func (p *Param) Reset() {
	p.SetValue(p.Spec.Default)
	if p.Spec.Kind != rack.Toggle {
		p.index = 0
	}
}

// Display returns the value formatted for the GUI.
func (p *Param) Display() (string, string) { return p.Spec.Display(p.Value()) }

// Normalized returns the value mapped to [0, 1], e.g. for the angle of a knob.
func (p *Param) Normalized() float32 {
	if p.Spec.Max <= p.Spec.Min {
		return 0
	}
	return (p.Value() - p.Spec.Min) / (p.Spec.Max - p.Spec.Min)
}

func stepIndex(s Switch, v float32) int {
	lo, _, step := s.Limits()
	return int(math.Round(float64((v - lo) / step)))
}

// toggleCycle advances to the next step on each press, wrapping to the
// minimum after the maximum.
func (toggleCycle) Press(s Switch) {
	lo, hi, step := s.Limits()
	next := s.Value() + step
	if next > hi+step/2 {
		next = lo
	}
	s.SetValue(next)
	s.SetDiscreteIndex(stepIndex(s, s.Value()))
}

func (toggleCycle) Release(Switch) {}
func (toggleCycle) Drop(Switch)    {}

// momentary holds the maximum while pressed.
func (momentary) Press(s Switch) {
	_, hi, _ := s.Limits()
	s.SetValue(hi)
	s.SetDiscreteIndex(1)
}

func (momentary) Release(s Switch) {
	lo, _, _ := s.Limits()
	s.SetValue(lo)
	s.SetDiscreteIndex(0)
}

func (momentary) Drop(Switch) {}

// modeLatch shows the pressed frame while held and cycles the value when the
// press is released on the switch itself.
func (modeLatch) Press(s Switch)   { s.SetDiscreteIndex(1) }
func (modeLatch) Release(s Switch) { s.SetDiscreteIndex(0) }

func (modeLatch) Drop(s Switch) {
	lo, hi, step := s.Limits()
	next := s.Value() + step
	if next > hi+step/2 {
		next = lo
	}
	s.SetValue(next)
}
