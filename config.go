package tilegrid

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Config describes one run of the demo. Zero-valued fields in a YAML file
// keep the defaults from DefaultConfig.
type Config struct {
	Window WindowConfig `yaml:"window"`
	World  WorldConfig  `yaml:"world"`
	Grid   GridConfig   `yaml:"grid"`
	Atlas  AtlasConfig  `yaml:"atlas"`
	Keys   KeyConfig    `yaml:"keys"`
	Marker MarkerConfig `yaml:"marker"`

	// Seed feeds RandomInitializer. Ignored when SeedScript is set.
	Seed uint64 `yaml:"seed"`
	// SeedScript is a tengo file deciding each cell's kind.
	SeedScript string `yaml:"seed_script"`
	// Debug logs frame stats and tile events to stderr.
	Debug bool `yaml:"debug"`
	// Watch reloads SeedScript when it changes on disk.
	Watch bool `yaml:"watch"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	Resizable bool   `yaml:"resizable"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GridConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// AtlasConfig points at a TexturePacker atlas and its single page image.
// With neither set the sheet is generated from DefaultSheetLayout.
type AtlasConfig struct {
	JSON   string            `yaml:"json"`
	Image  string            `yaml:"image"`
	Tiles  map[string]string `yaml:"tiles"` // kind name -> region name
	Marker string            `yaml:"marker"`
}

// KeyConfig holds ebiten key names ("R", "C", "Space").
type KeyConfig struct {
	Reset string `yaml:"reset"`
	Copy  string `yaml:"copy"`
}

type MarkerConfig struct {
	// PulsePeriod is the marker fade cycle in seconds; 0 disables it.
	PulsePeriod float64 `yaml:"pulse_period"`
	MinAlpha    float64 `yaml:"min_alpha"`
}

// DefaultConfig is a 640x360 window over a 320x180 world holding a 16x9 grid
// of 20-unit cells, reset on R.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 640, Height: 360, Title: "tilegrid", Resizable: true},
		World:  WorldConfig{Width: 320, Height: 180},
		Grid:   GridConfig{Width: 16, Height: 9, CellSize: 20},
		Atlas:  AtlasConfig{Marker: "selection"},
		Keys:   KeyConfig{Reset: "R", Copy: "C"},
		Marker: MarkerConfig{PulsePeriod: 1.2, MinAlpha: 0.35},
		Seed:   1,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tilegrid: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tilegrid: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every size and name. Size problems are
// *ConfigurationError; all failures match ErrConfiguration.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return configError("window size", float64(c.Window.Width), float64(c.Window.Height))
	}
	if err := c.Extent().Validate(); err != nil {
		return err
	}
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		return configError("grid size", float64(c.Grid.Width), float64(c.Grid.Height))
	}
	if !(c.Grid.CellSize > 0) {
		return configError("cell size", c.Grid.CellSize, c.Grid.CellSize)
	}
	if _, err := c.ResetKey(); err != nil {
		return err
	}
	if _, err := c.CopyKey(); err != nil {
		return err
	}
	if c.Marker.PulsePeriod < 0 || c.Marker.MinAlpha < 0 || c.Marker.MinAlpha > 1 {
		return fmt.Errorf("tilegrid: marker pulse %gs min alpha %g: %w",
			c.Marker.PulsePeriod, c.Marker.MinAlpha, ErrConfiguration)
	}
	if (c.Atlas.Image == "") != (c.Atlas.JSON == "") {
		return fmt.Errorf("tilegrid: atlas json %q and image %q must be set together: %w",
			c.Atlas.JSON, c.Atlas.Image, ErrConfiguration)
	}
	if _, err := c.RegionNames(); err != nil {
		return err
	}
	return nil
}

// Extent returns the configured world extent.
func (c Config) Extent() WorldExtent {
	return WorldExtent{Width: c.World.Width, Height: c.World.Height}
}

// ResetKey parses Keys.Reset.
func (c Config) ResetKey() (ebiten.Key, error) {
	return parseKey("reset", c.Keys.Reset)
}

// CopyKey parses Keys.Copy.
func (c Config) CopyKey() (ebiten.Key, error) {
	return parseKey("copy", c.Keys.Copy)
}

func parseKey(role, name string) (ebiten.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("tilegrid: %s key %q: %w", role, name, ErrConfiguration)
	}
	return k, nil
}

// RegionNames merges Atlas.Tiles and Atlas.Marker over DefaultRegionNames.
func (c Config) RegionNames() (RegionNames, error) {
	names := DefaultRegionNames()
	for kindName, region := range c.Atlas.Tiles {
		kind, ok := ParseTileKind(kindName)
		if !ok {
			return RegionNames{}, fmt.Errorf("tilegrid: atlas tile kind %q: %w", kindName, ErrConfiguration)
		}
		names.Tiles[kind] = region
	}
	if c.Atlas.Marker != "" {
		names.Marker = c.Atlas.Marker
	}
	return names, nil
}
