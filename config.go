package spinny

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Resolution is the fixed width and height of the render surface.
const Resolution = 800

// TiltMode selects where the camera tilt enters the transform.
type TiltMode string

const (
	// TiltPerFrame applies the current tilt every frame, so dragging tilts the cube.
	TiltPerFrame TiltMode = "per-frame"
	// TiltPreApplied bakes the starting tilt into the initial transform once.
	TiltPreApplied TiltMode = "pre-applied"
)

const (
	Preset14 = "14"
	Preset13 = "13"
)

type Config struct {
	Preset       string   `yaml:"preset"`
	FovY         float64  `yaml:"fov_y"`
	Near         float64  `yaml:"near"`
	Far          float64  `yaml:"far"`
	Vertices     int      `yaml:"vertices"`
	VertexStride int      `yaml:"vertex_stride"`
	AutoSpin     bool     `yaml:"auto_spin"`
	TiltMode     TiltMode `yaml:"tilt_mode"`
	InitialTilt  float64  `yaml:"initial_tilt"`
	Debug        bool     `yaml:"debug"`
}

// PresetConfig returns one of the two built-in cube configurations.
func PresetConfig(name string) (Config, error) {
	switch name {
	case Preset14, "":
		return Config{
			Preset:       Preset14,
			FovY:         math.Pi / 3,
			Near:         1,
			Far:          100,
			Vertices:     14,
			VertexStride: 4,
			AutoSpin:     true,
			TiltMode:     TiltPerFrame,
			InitialTilt:  -math.Pi / 3,
		}, nil
	case Preset13:
		return Config{
			Preset:       Preset13,
			FovY:         math.Pi / 2,
			Near:         1,
			Far:          100,
			Vertices:     13,
			VertexStride: 3,
			AutoSpin:     false,
			TiltMode:     TiltPreApplied,
			InitialTilt:  -math.Pi / 3,
		}, nil
	default:
		return Config{}, fmt.Errorf("unknown preset %q", name)
	}
}

// LoadConfig starts from the named preset and overlays the YAML file at path.
// An empty path or a missing file leaves the preset untouched.
func LoadConfig(path string, preset string, logger Logger) (Config, error) {
	cfg, err := PresetConfig(preset)
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			OrNop(logger).Warnf("Config %s not found, using preset %s", path, cfg.Preset)
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	// A preset named in the file replaces the flag's preset before overlaying.
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if head.Preset != "" && head.Preset != cfg.Preset {
		if cfg, err = PresetConfig(head.Preset); err != nil {
			return Config{}, err
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.FovY <= 0 || c.FovY >= math.Pi {
		return fmt.Errorf("fov_y must be in (0, pi), got %v", c.FovY)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("invalid clip planes near=%v far=%v", c.Near, c.Far)
	}
	if c.Vertices != 13 && c.Vertices != 14 {
		return fmt.Errorf("vertices must be 13 or 14, got %d", c.Vertices)
	}
	if c.VertexStride != 3 && c.VertexStride != 4 {
		return fmt.Errorf("vertex_stride must be 3 or 4, got %d", c.VertexStride)
	}
	switch c.TiltMode {
	case TiltPerFrame, TiltPreApplied:
	default:
		return fmt.Errorf("unknown tilt_mode %q", c.TiltMode)
	}
	if c.InitialTilt < -math.Pi || c.InitialTilt > 0 {
		return fmt.Errorf("initial_tilt must be in [-pi, 0], got %v", c.InitialTilt)
	}
	return nil
}
