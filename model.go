package rack

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
)

type (
	// Model is a factory for one module type, e.g. the "VCO" of the "Core"
	// plugin. Models are created once at startup and registered into a
	// Registry; they are never mutated afterwards.
	Model struct {
		// Plugin identifies the plugin providing the model, e.g. "Core".
		Plugin string
		// Slug identifies the model within the plugin, e.g. "VCO". Plugin and
		// Slug together are what gets saved in the patch documents.
		Slug string
		// Name is the human readable name shown in the GUI.
		Name string
		// Panel is the visual representation of the module.
		Panel Panel
		// New creates a new engine for an instance of this model. The engine
		// reads its parameters and input ports from the ModuleIO given to
		// Step, so the length of the Panel.Params, Panel.Inputs and
		// Panel.Outputs define what the engine can expect.
		New func() Engine
	}

	// Panel describes the layout of a module: its width in grid units and
	// where its ports and params are, relative to the top-left corner of the
	// module.
	Panel struct {
		Width   int // in grid units
		Inputs  []PortSpec
		Outputs []PortSpec
		Params  []ParamSpec
	}

	PortSpec struct {
		Name string
		Pos  Vec // center of the port, relative to the module
	}

	// ParamSpec documents one parameter of a module. Min and Max are
	// inclusive. For switches (all kinds but Knob), the value moves in Steps
	// equally spaced steps between Min and Max; Steps = 0 means integer steps.
	ParamSpec struct {
		Name        string
		Min         float32
		Max         float32
		Default     float32
		Steps       int
		Kind        ParamKind
		Pos         Vec // center of the control, relative to the module
		DisplayFunc ParamDisplayFunc
	}

	ParamDisplayFunc func(float32) (value string, unit string)

	ParamKind int

	// Registry is the set of models available for creating modules. It is
	// built once at startup and passed to everyone who needs it.
	Registry struct {
		models []*Model
		index  map[modelKey]*Model
	}

	modelKey struct {
		plugin, slug string
	}
)

const (
	Knob      ParamKind = iota // continuous, dragged vertically
	Toggle                     // each press advances to the next position
	Mode                       // index 1 while held, value cycles when released on itself
	Momentary                  // maximum while held, minimum when released
)

var paramKindNames = [...]string{"knob", "toggle", "mode", "momentary"}

func (k ParamKind) String() string {
	if k < 0 || int(k) >= len(paramKindNames) {
		return "ParamKind(" + strconv.Itoa(int(k)) + ")"
	}
	return paramKindNames[k]
}

// Discrete reports whether the parameter is a switch rather than a knob.
func (p *ParamSpec) Discrete() bool { return p.Kind != Knob }

// StepSize returns the distance between two adjacent switch positions.
func (p *ParamSpec) StepSize() float32 {
	if p.Steps <= 1 {
		return 1
	}
	return (p.Max - p.Min) / float32(p.Steps-1)
}

// Clamp limits v to [Min, Max].
func (p *ParamSpec) Clamp(v float32) float32 {
	return max(min(v, p.Max), p.Min)
}

func (p *ParamSpec) Display(v float32) (string, string) {
	if p.DisplayFunc != nil {
		return p.DisplayFunc(v)
	}
	return strconv.FormatFloat(float64(v), 'f', 2, 32), ""
}

// Create instantiates the model, returning the engine and the visual
// representation paired with it.
func (m *Model) Create() (Engine, *Panel, error) {
	if m.New == nil {
		return nil, nil, fmt.Errorf("model %s has no engine factory", m)
	}
	e := m.New()
	if e == nil {
		return nil, nil, fmt.Errorf("model %s returned a nil engine", m)
	}
	return e, &m.Panel, nil
}

func (m *Model) String() string { return m.Plugin + "/" + m.Slug }

// Size returns the size of the module in pixels, given the grid unit width
// and the row height.
func (m *Model) Size(gridUnit, rowHeight float32) Vec {
	return Vec{X: float32(max(m.Panel.Width, 1)) * gridUnit, Y: rowHeight}
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[modelKey]*Model)}
}

// Register adds models to the registry. A model with an empty plugin or slug,
// or one that is already registered, is an error; models before the failing
// one stay registered.
func (r *Registry) Register(models ...*Model) error {
	for _, m := range models {
		if m == nil || m.Plugin == "" || m.Slug == "" {
			return errors.New("model must have a plugin and a slug")
		}
		k := modelKey{m.Plugin, m.Slug}
		if _, ok := r.index[k]; ok {
			return fmt.Errorf("model %s is already registered", m)
		}
		r.index[k] = m
		r.models = append(r.models, m)
	}
	return nil
}

// Find looks up a model by its plugin and slug.
func (r *Registry) Find(plugin, slug string) (*Model, bool) {
	m, ok := r.index[modelKey{plugin, slug}]
	return m, ok
}

// Models iterates the registered models in registration order.
func (r *Registry) Models() iter.Seq[*Model] {
	return func(yield func(*Model) bool) {
		for _, m := range r.models {
			if !yield(m) {
				return
			}
		}
	}
}

func (r *Registry) Len() int { return len(r.models) }

// At returns the i-th registered model, or nil if i is out of range.
func (r *Registry) At(i int) *Model {
	if i < 0 || i >= len(r.models) {
		return nil
	}
	return r.models[i]
}
