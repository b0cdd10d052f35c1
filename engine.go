package rack

import (
	"math"
	"sync/atomic"
)

type (
	// Engine is the signal processor of a module instance. Step is called on
	// the processing goroutine, once per sample, while the editor keeps
	// reading and writing the same ModuleIO from the GUI goroutine; hence all
	// the values are atomics and an engine should never keep pointers into
	// ModuleIO across calls.
	Engine interface {
		Step(io *ModuleIO, dt float32)
	}

	// AudioOutput is implemented by engines that produce sound to the audio
	// device, e.g. the "Output" module of the Core plugin.
	AudioOutput interface {
		Frame() [2]float32
	}

	// Value is a float32 that can be read and written from different
	// goroutines without locks.
	Value struct {
		bits atomic.Uint32
	}

	// ModuleIO holds the values shared between the editor and the engine of
	// one module: parameter values, input port values and output port
	// values. The slices are allocated once and never resized.
	ModuleIO struct {
		Params  []Value
		Inputs  []Value
		Outputs []Value
	}
)

func (v *Value) Load() float32       { return math.Float32frombits(v.bits.Load()) }
func (v *Value) Store(value float32) { v.bits.Store(math.Float32bits(value)) }

// NewModuleIO allocates the values for a module with the given panel,
// initializing the parameters to their defaults.
func NewModuleIO(p *Panel) *ModuleIO {
	io := &ModuleIO{
		Params:  make([]Value, len(p.Params)),
		Inputs:  make([]Value, len(p.Inputs)),
		Outputs: make([]Value, len(p.Outputs)),
	}
	for i := range p.Params {
		io.Params[i].Store(p.Params[i].Default)
	}
	return io
}

// Param returns the value of the i-th parameter, or 0 if out of range.
func (io *ModuleIO) Param(i int) float32 {
	if i < 0 || i >= len(io.Params) {
		return 0
	}
	return io.Params[i].Load()
}

// Input returns the value of the i-th input port, or 0 if out of range.
func (io *ModuleIO) Input(i int) float32 {
	if i < 0 || i >= len(io.Inputs) {
		return 0
	}
	return io.Inputs[i].Load()
}

// SetOutput sets the value of the i-th output port; out of range indices are
// ignored.
func (io *ModuleIO) SetOutput(i int, v float32) {
	if i < 0 || i >= len(io.Outputs) {
		return
	}
	io.Outputs[i].Store(v)
}
