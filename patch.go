package rack

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is written to every saved patch. Documents with the same
// major version can be loaded.
const DocumentVersion = "1.0.0"

type (
	// Patch is the saved form of a patch: the modules with their positions
	// and parameter values, and the wires between them.
	Patch struct {
		Version string `yaml:"version" json:"version"`
		// Application is the version of the program that saved the patch,
		// purely informational.
		Application string         `yaml:"application,omitempty" json:"application,omitempty"`
		Modules     []ModuleRecord `yaml:"modules" json:"modules"`
		Wires       []WireRecord   `yaml:"wires" json:"wires"`
	}

	// ModuleRecord is one module of a Patch. ID is only used to refer to the
	// module from the WireRecords of the same Patch.
	ModuleRecord struct {
		ID     int       `yaml:"id" json:"id"`
		Plugin string    `yaml:"plugin" json:"plugin"`
		Model  string    `yaml:"model" json:"model"`
		X      float32   `yaml:"x" json:"x"`
		Y      float32   `yaml:"y" json:"y"`
		Params []float32 `yaml:"params,flow" json:"params"`
	}

	// WireRecord is one wire of a Patch, from an output port to an input port.
	WireRecord struct {
		OutputModuleID int   `yaml:"outputModuleId" json:"outputModuleId"`
		OutputPort     int   `yaml:"outputPort" json:"outputPort"`
		InputModuleID  int   `yaml:"inputModuleId" json:"inputModuleId"`
		InputPort      int   `yaml:"inputPort" json:"inputPort"`
		Color          Color `yaml:"color" json:"color"`
	}

	// Color is a non-premultiplied RGBA color. It is marshaled as "#rrggbbaa".
	Color struct {
		R, G, B, A uint8
	}
)

// Copy makes a deep copy of a Patch.
func (p *Patch) Copy() Patch {
	modules := make([]ModuleRecord, len(p.Modules))
	for i, m := range p.Modules {
		modules[i] = m
		modules[i].Params = append([]float32(nil), m.Params...)
	}
	wires := make([]WireRecord, len(p.Wires))
	copy(wires, p.Wires)
	return Patch{Version: p.Version, Application: p.Application, Modules: modules, Wires: wires}
}

// CheckVersion returns an error if the Patch was saved with a document
// version this program cannot read.
func (p *Patch) CheckVersion() error {
	v, err := semver.NewVersion(p.Version)
	if err != nil {
		return fmt.Errorf("invalid document version %q: %w", p.Version, err)
	}
	current := semver.MustParse(DocumentVersion)
	if v.Major() != current.Major() {
		return fmt.Errorf("document version %v is not compatible with %v", v, current)
	}
	return nil
}

// Module returns the record with the given id.
func (p *Patch) Module(id int) (*ModuleRecord, bool) {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i], true
		}
	}
	return nil, false
}

func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

func (c Color) String() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"; the alpha defaults to 0xff.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	b, err := hex.DecodeString(h)
	if err != nil || (len(b) != 3 && len(b) != 4) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 0xff}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) MarshalYAML() (any, error) { return c.String(), nil }

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}
