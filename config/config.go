// Package config holds the editor settings read from editor.yaml.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "editor.yaml"

type Config struct {
	CellSize           float64   `yaml:"cell_size"`
	DoubleClickSeconds float64   `yaml:"double_click_seconds"`
	MaxHistory         int       `yaml:"max_history"`
	BrushSize          int       `yaml:"brush_size"`
	GridSnapping       bool      `yaml:"grid_snapping"`
	SaveDir            string    `yaml:"save_dir"`
	Preview            Preview   `yaml:"preview"`
	Storage            Storage   `yaml:"storage"`
	Camera             Camera    `yaml:"camera"`
	Materials          Materials `yaml:"materials"`
}

type Preview struct {
	Size   int    `yaml:"size"`
	Format string `yaml:"format"`
}

// Storage selects the level store. Driver is "dir", "sqlite3" or "postgres".
type Storage struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type Camera struct {
	Zoom     float64 `yaml:"zoom"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	PanSpeed float64 `yaml:"pan_speed"`
}

// Materials names the colornames entries used to draw objects.
type Materials struct {
	Default        string `yaml:"default"`
	Highlight      string `yaml:"highlight"`
	GroupHighlight string `yaml:"group_highlight"`
}

func Default() Config {
	return Config{
		CellSize:           1,
		DoubleClickSeconds: 0.2,
		MaxHistory:         50,
		BrushSize:          1,
		GridSnapping:       true,
		SaveDir:            "levels",
		Preview:            Preview{Size: 256, Format: "png"},
		Storage:            Storage{Driver: "dir"},
		Camera:             Camera{Zoom: 32, MinZoom: 8, MaxZoom: 128, PanSpeed: 20},
		Materials:          Materials{Default: "white", Highlight: "gold", GroupHighlight: "limegreen"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.fix()
	return cfg, nil
}

func (c *Config) fix() {
	d := Default()
	if c.CellSize <= 0 {
		c.CellSize = d.CellSize
	}
	if c.DoubleClickSeconds <= 0 {
		c.DoubleClickSeconds = d.DoubleClickSeconds
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = d.MaxHistory
	}
	if c.BrushSize <= 0 {
		c.BrushSize = d.BrushSize
	}
	if c.Preview.Size <= 0 {
		c.Preview.Size = d.Preview.Size
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		c.Camera.MinZoom, c.Camera.MaxZoom = d.Camera.MinZoom, d.Camera.MaxZoom
	}
	if c.Camera.Zoom < c.Camera.MinZoom || c.Camera.Zoom > c.Camera.MaxZoom {
		c.Camera.Zoom = d.Camera.Zoom
	}
}

// Color resolves a colornames entry, falling back when name is unknown.
func Color(name string, fallback color.RGBA) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return fallback
}
