package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/wireframe/engine/math"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownConfigFormat = errors.New("unknown config format")
	ErrInvalidConfig       = errors.New("invalid config")
)

const (
	DEFAULT_WIDTH       = 640
	DEFAULT_HEIGHT      = 480
	DEFAULT_SUPERSAMPLE = 2
	DEFAULT_FRAME_RATE  = 30.0
	DEFAULT_FORMAT      = "webp"
	DEFAULT_OUTPUT_DIR  = "frames"
	DEFAULT_BACKGROUND  = "#101014"
	DEFAULT_STROKE      = "#e8e8e8"

	BUILTIN_CUBE = "cube"
)

// Config describes the application and the initial scene.
type Config struct {
	Application Application `toml:"application" yaml:"application"`
	Models      []Model     `toml:"models" yaml:"models"`
	Entities    []Entity    `toml:"entities" yaml:"entities"`
	Cameras     []Camera    `toml:"cameras" yaml:"cameras"`
	// ActiveCamera falls back to the first camera when empty or unknown.
	ActiveCamera string `toml:"active_camera" yaml:"active_camera"`
}

type Application struct {
	Name   string `toml:"name" yaml:"name"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	// Supersample factor of the raster canvas, 1 disables it.
	Supersample int `toml:"supersample" yaml:"supersample"`
	// Frames to render. 0 renders until interrupted.
	Frames int `toml:"frames" yaml:"frames"`
	// FrameRate is the simulated frame rate used to advance animation.
	FrameRate  float64 `toml:"frame_rate" yaml:"frame_rate"`
	OutputDir  string  `toml:"output_dir" yaml:"output_dir"`
	Format     string  `toml:"format" yaml:"format"`
	LogLevel   string  `toml:"log_level" yaml:"log_level"`
	Background string  `toml:"background" yaml:"background"`
	Stroke     string  `toml:"stroke" yaml:"stroke"`
	// Watch reloads model files when they change on disk.
	Watch bool `toml:"watch" yaml:"watch"`
}

// Model is either a file on disk or a builtin ("cube").
type Model struct {
	Name    string `toml:"name" yaml:"name"`
	Path    string `toml:"path" yaml:"path"`
	Builtin string `toml:"builtin" yaml:"builtin"`
}

type Entity struct {
	ID    string `toml:"id" yaml:"id"`
	Model string `toml:"model" yaml:"model"`
	// Vectors are [x, y, z]. Rotation and Spin are in radians (per second for Spin).
	Position   []float64 `toml:"position" yaml:"position"`
	Rotation   []float64 `toml:"rotation" yaml:"rotation"`
	Scale      []float64 `toml:"scale" yaml:"scale"`
	Reflection []bool    `toml:"reflection" yaml:"reflection"`
	Spin       []float64 `toml:"spin" yaml:"spin"`
}

type Camera struct {
	ID       string    `toml:"id" yaml:"id"`
	Position []float64 `toml:"position" yaml:"position"`
	Rotation []float64 `toml:"rotation" yaml:"rotation"`
	Spin     []float64 `toml:"spin" yaml:"spin"`
	FOV      *float64  `toml:"fov" yaml:"fov"`
	Near     *float64  `toml:"near" yaml:"near"`
	Far      *float64  `toml:"far" yaml:"far"`
}

// Flags holds command line values that override the file.
type Flags struct {
	Frames    int
	OutputDir string
	Format    string
	LogLevel  string
}

// Default is a spinning cube in front of a single camera.
func Default() *Config {
	cfg := &Config{
		Models: []Model{{Name: BUILTIN_CUBE, Builtin: BUILTIN_CUBE}},
		Entities: []Entity{{
			ID:       "cube",
			Model:    BUILTIN_CUBE,
			Position: []float64{-0.5, -0.5, -3},
			Spin:     []float64{0.3, 0.8, 0},
		}},
		Cameras:      []Camera{{ID: "main"}},
		ActiveCamera: "main",
	}
	cfg.Application.Frames = 1
	cfg.applyDefaults()
	return cfg
}

// Load reads a .toml, .yaml or .yml file. Model paths are resolved relative
// to the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownConfigFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, m := range cfg.Models {
		if m.Path != "" && !filepath.IsAbs(m.Path) {
			cfg.Models[i].Path = filepath.Join(base, m.Path)
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	app := &c.Application
	if app.Name == "" {
		app.Name = "wireframe"
	}
	if app.Width <= 0 {
		app.Width = DEFAULT_WIDTH
	}
	if app.Height <= 0 {
		app.Height = DEFAULT_HEIGHT
	}
	if app.Supersample <= 0 {
		app.Supersample = DEFAULT_SUPERSAMPLE
	}
	if app.FrameRate <= 0 {
		app.FrameRate = DEFAULT_FRAME_RATE
	}
	if app.OutputDir == "" {
		app.OutputDir = DEFAULT_OUTPUT_DIR
	}
	if app.Format == "" {
		app.Format = DEFAULT_FORMAT
	}
	if app.LogLevel == "" {
		app.LogLevel = "info"
	}
	if app.Background == "" {
		app.Background = DEFAULT_BACKGROUND
	}
	if app.Stroke == "" {
		app.Stroke = DEFAULT_STROKE
	}
}

// Override applies command line values on top of the file. Zero values are ignored.
func (c *Config) Override(flags Flags) {
	if flags.Frames > 0 {
		c.Application.Frames = flags.Frames
	}
	if flags.OutputDir != "" {
		c.Application.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Application.Format = flags.Format
	}
	if flags.LogLevel != "" {
		c.Application.LogLevel = flags.LogLevel
	}
}

// Validate reports every problem it finds at once.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	app := c.Application
	if app.Frames < 0 {
		fail("frames must not be negative")
	}
	switch strings.ToLower(app.Format) {
	case "webp", "png":
	default:
		fail("format %q, expected webp or png", app.Format)
	}
	if _, err := ParseColor(app.Background); err != nil {
		fail("background: %s", err)
	}
	if _, err := ParseColor(app.Stroke); err != nil {
		fail("stroke: %s", err)
	}

	models := make(map[string]struct{}, len(c.Models))
	for i, m := range c.Models {
		switch {
		case m.Name == "":
			fail("model #%d has no name", i)
		case m.Path == "" && m.Builtin == "":
			fail("model '%s' needs a path or a builtin", m.Name)
		case m.Builtin != "" && m.Builtin != BUILTIN_CUBE:
			fail("model '%s': unknown builtin %q", m.Name, m.Builtin)
		}
		if _, dup := models[m.Name]; dup {
			fail("model '%s' declared twice", m.Name)
		}
		models[m.Name] = struct{}{}
	}

	ids := make(map[string]struct{})
	checkID := func(id string) {
		if id == "" {
			return
		}
		if _, dup := ids[id]; dup {
			fail("id '%s' used twice", id)
		}
		ids[id] = struct{}{}
	}
	for _, e := range c.Entities {
		checkID(e.ID)
		if e.Model != "" {
			if _, ok := models[e.Model]; !ok {
				fail("entity '%s' references unknown model '%s'", e.ID, e.Model)
			}
		}
		for name, v := range map[string][]float64{"position": e.Position, "rotation": e.Rotation, "scale": e.Scale, "spin": e.Spin} {
			if v != nil && len(v) != 3 {
				fail("entity '%s': %s needs 3 values, got %d", e.ID, name, len(v))
			}
		}
		if e.Reflection != nil && len(e.Reflection) != 3 {
			fail("entity '%s': reflection needs 3 values, got %d", e.ID, len(e.Reflection))
		}
	}
	for _, cam := range c.Cameras {
		checkID(cam.ID)
		for name, v := range map[string][]float64{"position": cam.Position, "rotation": cam.Rotation, "spin": cam.Spin} {
			if v != nil && len(v) != 3 {
				fail("camera '%s': %s needs 3 values, got %d", cam.ID, name, len(v))
			}
		}
		if cam.FOV != nil && (*cam.FOV <= 0 || *cam.FOV >= 180) {
			fail("camera '%s': fov must be in (0, 180)", cam.ID)
		}
		near, far := 0.1, 1000.0
		if cam.Near != nil {
			near = *cam.Near
		}
		if cam.Far != nil {
			far = *cam.Far
		}
		if near <= 0 || far <= near {
			fail("camera '%s': expected 0 < near < far", cam.ID)
		}
	}
	return errors.Join(errs...)
}

// Vec3 turns an optional [x, y, z] into a pointer, nil when absent.
func Vec3(v []float64) *math.Vec3 {
	if len(v) != 3 {
		return nil
	}
	out := math.NewVec3(v[0], v[1], v[2])
	return &out
}

func BVec3(v []bool) *math.BVec3 {
	if len(v) != 3 {
		return nil
	}
	return &math.BVec3{X: v[0], Y: v[1], Z: v[2]}
}

// ParseColor reads "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q: expected #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
