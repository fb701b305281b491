// Package config loads render settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
	"github.com/taigrr/raster3d/pkg/shader"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full demo configuration.
type Config struct {
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	MSAA    bool   `toml:"msaa" yaml:"msaa"`
	Cull    string `toml:"cull" yaml:"cull"`
	Workers int    `toml:"workers" yaml:"workers"`

	ShadowMapSize int `toml:"shadow_map_size" yaml:"shadowMapSize"`

	// Model replaces the cube with a glTF mesh when set.
	Model string `toml:"model" yaml:"model,omitempty"`
	// Bounds draws object bounding boxes over the frame.
	Bounds bool `toml:"bounds" yaml:"bounds,omitempty"`

	Camera   CameraConfig  `toml:"camera" yaml:"camera"`
	Light    LightConfig   `toml:"light" yaml:"light"`
	PCSS     PCSSConfig    `toml:"pcss" yaml:"pcss"`
	Textures TextureConfig `toml:"textures" yaml:"textures"`
}

// CameraConfig places the viewer. Angles are in degrees.
type CameraConfig struct {
	Position [3]float64 `toml:"position" yaml:"position"`
	Yaw      float64    `toml:"yaw" yaml:"yaw"`
	Pitch    float64    `toml:"pitch" yaml:"pitch"`
	FOV      float64    `toml:"fov" yaml:"fov"`
	Near     float64    `toml:"near" yaml:"near"`
	Far      float64    `toml:"far" yaml:"far"`
}

// LightConfig places the directional light and sizes its shadow volume.
type LightConfig struct {
	Position   [3]float64 `toml:"position" yaml:"position"`
	Target     [3]float64 `toml:"target" yaml:"target"`
	HalfWidth  float64    `toml:"half_width" yaml:"halfWidth"`
	HalfHeight float64    `toml:"half_height" yaml:"halfHeight"`
	Near       float64    `toml:"near" yaml:"near"`
	Far        float64    `toml:"far" yaml:"far"`
}

// PCSSConfig mirrors shader.PCSSParams.
type PCSSConfig struct {
	Samples       int     `toml:"samples" yaml:"samples"`
	Rings         int     `toml:"rings" yaml:"rings"`
	BlockerRadius float64 `toml:"blocker_radius" yaml:"blockerRadius"`
	LightWidth    float64 `toml:"light_width" yaml:"lightWidth"`
	BlockerBias   float64 `toml:"blocker_bias" yaml:"blockerBias"`
	PCFBias       float64 `toml:"pcf_bias" yaml:"pcfBias"`
	Seed          uint64  `toml:"seed" yaml:"seed"`
}

// TextureConfig names the cube textures. Empty paths select the built-in
// procedural textures.
type TextureConfig struct {
	Diffuse string `toml:"diffuse" yaml:"diffuse,omitempty"`
	Normal  string `toml:"normal" yaml:"normal,omitempty"`
}

// Default returns the demo defaults.
func Default() Config {
	p := shader.DefaultPCSSParams()
	return Config{
		Width:         1280,
		Height:        720,
		MSAA:          true,
		Cull:          render.CullClockwise.String(),
		ShadowMapSize: 512,
		Camera: CameraConfig{
			Position: [3]float64{0, 1, 10},
			Yaw:      -90,
			FOV:      45,
			Near:     1,
			Far:      1000,
		},
		Light: LightConfig{
			Position:   [3]float64{5, 10, 5},
			Target:     [3]float64{0, 2, 0},
			HalfWidth:  10,
			HalfHeight: 10,
			Near:       0.1,
			Far:        50,
		},
		PCSS: PCSSConfig{
			Samples:       p.Samples,
			Rings:         p.Rings,
			BlockerRadius: p.BlockerRadius,
			LightWidth:    p.LightWidth,
			BlockerBias:   p.BlockerBias,
			PCFBias:       p.PCFBias,
		},
	}
}

// Load reads path on top of Default. The format is chosen by extension:
// .toml, .yaml or .yml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.ShadowMapSize <= 0:
		return fmt.Errorf("%w: shadow map size %d", ErrInvalid, c.ShadowMapSize)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip range [%g, %g]", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %g", ErrInvalid, c.Camera.FOV)
	case c.Light.Far <= c.Light.Near:
		return fmt.Errorf("%w: light clip range [%g, %g]", ErrInvalid, c.Light.Near, c.Light.Far)
	case c.Light.HalfWidth <= 0 || c.Light.HalfHeight <= 0:
		return fmt.Errorf("%w: light extents %gx%g", ErrInvalid, c.Light.HalfWidth, c.Light.HalfHeight)
	case c.Light.Position == c.Light.Target:
		return fmt.Errorf("%w: light position equals target", ErrInvalid)
	case c.PCSS.Samples < 1 || c.PCSS.Samples > shader.MaxDiskSamples:
		return fmt.Errorf("%w: pcss samples %d not in [1, %d]", ErrInvalid, c.PCSS.Samples, shader.MaxDiskSamples)
	}
	if _, err := render.ParseCullMode(c.Cull); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// CullMode returns the parsed cull mode. It assumes Validate passed.
func (c Config) CullMode() render.CullMode {
	m, _ := render.ParseCullMode(c.Cull)
	return m
}

// Engine returns the rasterizer configuration for the main pass.
func (c Config) Engine() render.Config {
	return render.Config{
		Width:     c.Width,
		Height:    c.Height,
		DrawColor: true,
		DrawDepth: true,
		MSAA:      c.MSAA,
		Cull:      c.CullMode(),
		Workers:   c.Workers,
	}
}

// Params converts to shader parameters.
func (p PCSSConfig) Params() shader.PCSSParams {
	return shader.PCSSParams{
		Samples:       p.Samples,
		Rings:         p.Rings,
		BlockerRadius: p.BlockerRadius,
		LightWidth:    p.LightWidth,
		BlockerBias:   p.BlockerBias,
		PCFBias:       p.PCFBias,
		Seed:          p.Seed,
	}
}

// Vec converts a config triple.
func Vec(v [3]float64) math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}
