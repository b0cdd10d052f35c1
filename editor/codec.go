package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vsariola/rack"
	"github.com/vsariola/rack/version"
	"gopkg.in/yaml.v3"
)

// Format is the serialization format of a patch document.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatOf picks the format from the file extension: JSON for .json, YAML for
// anything else.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "yaml"
}

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return YAML, fmt.Errorf("unknown format %q", s)
}

// Serialize converts the graph into a document. Modules and wires are listed
// in creation order, so serializing the same graph twice gives the same
// document.
func Serialize(g *Graph) *rack.Patch {
	p := &rack.Patch{
		Version:     rack.DocumentVersion,
		Application: version.Application(),
		Modules:     make([]rack.ModuleRecord, 0, g.NumModules()),
		Wires:       make([]rack.WireRecord, 0, g.NumWires()),
	}
	for m := range g.Modules() {
		pos := m.Pos()
		p.Modules = append(p.Modules, rack.ModuleRecord{
			ID:     m.ID,
			Plugin: m.Model.Plugin,
			Model:  m.Model.Slug,
			X:      pos.X,
			Y:      pos.Y,
			Params: m.ParamValues(),
		})
	}
	for w := range g.Wires() {
		p.Wires = append(p.Wires, rack.WireRecord{
			OutputModuleID: w.Out.Module,
			OutputPort:     w.Out.Index,
			InputModuleID:  w.In.Module,
			InputPort:      w.In.Index,
			Color:          w.Color,
		})
	}
	return p
}

// Encode marshals the document in the given format.
func Encode(p *rack.Patch, f Format) ([]byte, error) {
	if f == JSON {
		b, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("could not marshal patch to json: %w", err)
		}
		return b, nil
	}
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal patch to yaml: %w", err)
	}
	return b, nil
}

type (
	// rawPatch mirrors rack.Patch with pointers, so that missing required
	// fields can be told apart from zeros.
	rawPatch struct {
		Version     *string     `yaml:"version" json:"version"`
		Application string      `yaml:"application" json:"application"`
		Modules     []rawModule `yaml:"modules" json:"modules"`
		Wires       []rawWire   `yaml:"wires" json:"wires"`
	}

	rawModule struct {
		ID     *int      `yaml:"id" json:"id"`
		Plugin *string   `yaml:"plugin" json:"plugin"`
		Model  *string   `yaml:"model" json:"model"`
		X      float32   `yaml:"x" json:"x"`
		Y      float32   `yaml:"y" json:"y"`
		Params []float32 `yaml:"params" json:"params"`
	}

	rawWire struct {
		OutputModuleID *int        `yaml:"outputModuleId" json:"outputModuleId"`
		OutputPort     *int        `yaml:"outputPort" json:"outputPort"`
		InputModuleID  *int        `yaml:"inputModuleId" json:"inputModuleId"`
		InputPort      *int        `yaml:"inputPort" json:"inputPort"`
		Color          *rack.Color `yaml:"color" json:"color"`
	}
)

// Decode parses a document, trying JSON first and then YAML. A document that
// cannot be parsed, lacks required fields, has an incompatible version or
// refers to modules it does not contain is a *MalformedDocumentError.
func Decode(b []byte) (*rack.Patch, error) {
	var raw rawPatch
	if errJSON := json.Unmarshal(b, &raw); errJSON != nil {
		raw = rawPatch{}
		if errYAML := yaml.Unmarshal(b, &raw); errYAML != nil {
			return nil, &MalformedDocumentError{Reason: "not valid json or yaml", Err: errors.Join(errJSON, errYAML)}
		}
	}
	if raw.Version == nil {
		return nil, malformed("missing version")
	}
	p := &rack.Patch{
		Version:     *raw.Version,
		Application: raw.Application,
		Modules:     make([]rack.ModuleRecord, len(raw.Modules)),
		Wires:       make([]rack.WireRecord, len(raw.Wires)),
	}
	for i, m := range raw.Modules {
		if m.ID == nil || m.Plugin == nil || m.Model == nil {
			return nil, malformed("module %d: id, plugin and model are required", i)
		}
		p.Modules[i] = rack.ModuleRecord{ID: *m.ID, Plugin: *m.Plugin, Model: *m.Model, X: m.X, Y: m.Y, Params: m.Params}
	}
	for i, w := range raw.Wires {
		if w.OutputModuleID == nil || w.OutputPort == nil || w.InputModuleID == nil || w.InputPort == nil {
			return nil, malformed("wire %d: module ids and ports are required", i)
		}
		p.Wires[i] = rack.WireRecord{OutputModuleID: *w.OutputModuleID, OutputPort: *w.OutputPort, InputModuleID: *w.InputModuleID, InputPort: *w.InputPort}
		if w.Color != nil {
			p.Wires[i].Color = *w.Color
		} else {
			p.Wires[i].Color = WirePalette[i%len(WirePalette)]
		}
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the structure of a document: a compatible version and
// unique module ids. Wires to modules missing from the document are not an
// error here; Deserialize drops them.
func Validate(p *rack.Patch) error {
	if err := p.CheckVersion(); err != nil {
		return &MalformedDocumentError{Reason: "incompatible version", Err: err}
	}
	ids := make(map[int]bool, len(p.Modules))
	for _, m := range p.Modules {
		if ids[m.ID] {
			return malformed("duplicate module id %d", m.ID)
		}
		ids[m.ID] = true
	}
	return nil
}

// Deserialize builds a new graph from a document. Modules whose model is not
// in the registry are skipped, each producing an *UnknownModelError warning,
// and the wires to them are dropped silently. Wires to modules that are not in
// the document, or that could not be placed, are dropped with a warning
// wrapping ErrNoSuchModule or ErrNoSpace. Wires that cannot be connected
// produce a warning wrapping ErrInvalidConnection. Only a structurally invalid
// document is an error, in which case no graph is returned.
func Deserialize(p *rack.Patch, registry *rack.Registry, cfg Config) (g *Graph, warnings []error, err error) {
	if err := Validate(p); err != nil {
		return nil, nil, err
	}
	g = NewGraph(cfg)
	ids := make(map[int]int, len(p.Modules)) // document id -> graph id
	skipped := make(map[int]error, len(p.Modules))
	for _, rec := range p.Modules {
		model, ok := registry.Find(rec.Plugin, rec.Model)
		if !ok {
			warnings = append(warnings, &UnknownModelError{ModuleID: rec.ID, Plugin: rec.Plugin, Model: rec.Model})
			skipped[rec.ID] = nil
			continue
		}
		id, err := g.AddModule(model, rack.V(rec.X, rec.Y))
		if err != nil {
			warnings = append(warnings, fmt.Errorf("module %d (%s): %w", rec.ID, model, err))
			skipped[rec.ID] = err
			continue
		}
		m, _ := g.Module(id)
		m.SetParamValues(rec.Params)
		ids[rec.ID] = id
	}
	for i, rec := range p.Wires {
		out, ok1 := ids[rec.OutputModuleID]
		in, ok2 := ids[rec.InputModuleID]
		if !ok1 || !ok2 {
			if err := droppedWire(rec, ids, skipped); err != nil {
				warnings = append(warnings, fmt.Errorf("wire %d: %w", i, err))
			}
			continue
		}
		o, n := Out(out, rec.OutputPort), In(in, rec.InputPort)
		if err := g.CanConnect(o, n); err != nil {
			warnings = append(warnings, fmt.Errorf("wire %d: %w", i, err))
			continue
		}
		g.ConnectColor(o, n, rec.Color)
	}
	g.colorIndex = len(p.Wires)
	return g, warnings, nil
}

// droppedWire tells why a wire of a document has no module at one of its ends.
// Wires to modules of unknown models give nil.
func droppedWire(rec rack.WireRecord, ids map[int]int, skipped map[int]error) error {
	for _, id := range []int{rec.OutputModuleID, rec.InputModuleID} {
		if _, ok := ids[id]; ok {
			continue
		}
		err, ok := skipped[id]
		if !ok {
			return fmt.Errorf("module %d: %w", id, ErrNoSuchModule)
		}
		if err != nil {
			return fmt.Errorf("module %d was not placed: %w", id, err)
		}
	}
	return nil
}
