package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/vsariola/rack"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the editor. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	// GridUnit is the width of one grid unit in pixels; module widths and x
	// positions are multiples of it.
	GridUnit float32 `yaml:"gridUnit"`
	// RowHeight is the height of a module; y positions are multiples of it.
	RowHeight float32 `yaml:"rowHeight"`
	// Columns and Rows give the size of the canvas, in grid units and rows.
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`

	// PortHitRadius is how close to a port the pointer needs to be, when
	// dragging a wire, for the port to become the drop target.
	PortHitRadius float32 `yaml:"portHitRadius"`
	// KnobSensitivity is the fraction of the parameter range that one pixel
	// of vertical drag changes the value.
	KnobSensitivity float32 `yaml:"knobSensitivity"`
	// FineDivisor divides the sensitivity when the fine modifier is held.
	FineDivisor float32 `yaml:"fineDivisor"`

	WireTension float32 `yaml:"wireTension"`
	WireOpacity float32 `yaml:"wireOpacity"`

	// RecoveryInterval is how often the GUI saves the recovery file; 0
	// disables saving.
	RecoveryInterval time.Duration `yaml:"recoveryInterval"`
}

func DefaultConfig() Config {
	return Config{
		GridUnit:         15,
		RowHeight:        380,
		Columns:          256,
		Rows:             8,
		PortHitRadius:    15,
		KnobSensitivity:  0.0015,
		FineDivisor:      16,
		WireTension:      0.5,
		WireOpacity:      0.75,
		RecoveryInterval: 30 * time.Second,
	}
}

// LoadConfig reads the config from a yaml file, on top of the defaults. A
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return DefaultConfig(), fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.GridUnit <= 0 || c.RowHeight <= 0:
		return errors.New("gridUnit and rowHeight should be > 0")
	case c.Columns <= 0 || c.Rows <= 0:
		return errors.New("columns and rows should be > 0")
	case c.FineDivisor <= 0:
		return errors.New("fineDivisor should be > 0")
	case c.WireTension < 0 || c.WireTension > 1 || c.WireOpacity < 0 || c.WireOpacity > 1:
		return errors.New("wireTension and wireOpacity should be in [0, 1]")
	}
	return nil
}

// Bounds returns the rectangle of the whole canvas.
func (c *Config) Bounds() rack.Rect {
	return rack.Rect{Size: rack.V(float32(c.Columns)*c.GridUnit, float32(c.Rows)*c.RowHeight)}
}
