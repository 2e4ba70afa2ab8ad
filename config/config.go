// Package config loads the display description consumed at construction
// time: canvas geometry, tile placement and wiring, color profile and
// transport selection.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/ledgrid/layout"
)

type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Grid is the common case: cols×rows identical tiles sharing one wiring.
type Grid struct {
	Cols       int    `yaml:"cols"`
	Rows       int    `yaml:"rows"`
	TileWidth  int    `yaml:"tile_width"`
	TileHeight int    `yaml:"tile_height"`
	Wiring     string `yaml:"wiring"`
}

// Tile is an explicit placement for irregular arrangements.
type Tile struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Rotation int    `yaml:"rotation,omitempty"` // degrees clockwise: 0/90/180/270
	Wiring   string `yaml:"wiring"`
}

type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2400000
}

type Stream struct {
	Addr string `yaml:"addr"` // e.g. :8080
}

type Config struct {
	Transport  string  `yaml:"transport"` // spi | ws2812 | screen | stream | sim
	ColorOrder string  `yaml:"color_order"`
	Gamma      float64 `yaml:"gamma,omitempty"`
	Brightness int     `yaml:"brightness"` // 0..255
	FPS        int     `yaml:"fps"`

	Canvas Canvas `yaml:"canvas"`
	Grid   *Grid  `yaml:"grid,omitempty"`
	Tiles  []Tile `yaml:"tiles,omitempty"`

	SPI    SPI    `yaml:"spi,omitempty"`
	Stream Stream `yaml:"stream,omitempty"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// BrightnessLevel validates a resolved brightness value. Conversion to byte
// would otherwise truncate silently (300 becomes 44).
func BrightnessLevel(v int) (byte, error) {
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("config: brightness %d outside 0..255", v)
	}
	return byte(v), nil
}

func rotation(deg int) (layout.Rotation, error) {
	switch deg {
	case 0:
		return layout.Rot0, nil
	case 90:
		return layout.Rot90, nil
	case 180:
		return layout.Rot180, nil
	case 270:
		return layout.Rot270, nil
	}
	return 0, fmt.Errorf("config: unsupported rotation %d", deg)
}

// Layout assembles the tile arrangement, from the grid shorthand or the
// explicit tile list. Exactly one of the two must be present.
func (c *Config) Layout() (*layout.Layout, error) {
	switch {
	case c.Grid != nil && len(c.Tiles) > 0:
		return nil, fmt.Errorf("config: declare either grid or tiles, not both")
	case c.Grid != nil:
		g := c.Grid
		l, err := layout.Grid(g.Cols, g.Rows, g.TileWidth, g.TileHeight, g.Wiring)
		if err != nil {
			return nil, err
		}
		// A canvas block is redundant with a grid, but if declared it
		// must agree with the grid's footprint.
		if (c.Canvas.Width != 0 || c.Canvas.Height != 0) &&
			(c.Canvas.Width != l.Width() || c.Canvas.Height != l.Height()) {
			return nil, fmt.Errorf("config: canvas %dx%d does not match grid %dx%d",
				c.Canvas.Width, c.Canvas.Height, l.Width(), l.Height())
		}
		return l, nil
	case len(c.Tiles) > 0:
		tiles := make([]layout.Tile, len(c.Tiles))
		for i, t := range c.Tiles {
			rot, err := rotation(t.Rotation)
			if err != nil {
				return nil, fmt.Errorf("config: tile %d: %w", i, err)
			}
			tiles[i] = layout.Tile{W: t.Width, H: t.Height, X: t.X, Y: t.Y, Rot: rot, Wiring: t.Wiring}
		}
		return layout.New(c.Canvas.Width, c.Canvas.Height, tiles)
	}
	return nil, fmt.Errorf("config: no tiles declared")
}
