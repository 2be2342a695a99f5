// Package config provides configuration loading and access for the sketches.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all sketch configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Noise     NoiseConfig     `yaml:"noise"`
	Flow      FlowConfig      `yaml:"flow"`
	Wave      WaveConfig      `yaml:"wave"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Emitter   EmitterConfig   `yaml:"emitter"`
	Stage     StageConfig     `yaml:"stage"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// NoiseConfig selects the coherent noise backend.
type NoiseConfig struct {
	Backend string `yaml:"backend"` // perlin, opensimplex or aquilax
	Octaves int    `yaml:"octaves"` // perlin and aquilax; opensimplex is single-octave
}

// FlowConfig holds the ambient flow field parameters.
type FlowConfig struct {
	Count        int     `yaml:"count"`
	LinkRadius   float64 `yaml:"link_radius"`
	LinkAlpha    float64 `yaml:"link_alpha"`    // peak link alpha, 0-255
	SpatialScale float64 `yaml:"spatial_scale"` // noise units per canvas unit
	TimeScale    float64 `yaml:"time_scale"`    // noise units per frame
	YOffset      float64 `yaml:"y_offset"`      // time offset for the y channel
	Strength     float64 `yaml:"strength"`      // force = noise*strength - strength/2
	MinSpeed     float64 `yaml:"min_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	InitialSpeed float64 `yaml:"initial_speed"`
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
}

// WaveConfig holds the circular wave field parameters.
type WaveConfig struct {
	Bands        int     `yaml:"bands"`
	PhaseStep    float64 `yaml:"phase_step"`
	AngleStep    float64 `yaml:"angle_step"`
	RadiusFactor float64 `yaml:"radius_factor"` // fraction of min(width, height)
	HueSpacing   float64 `yaml:"hue_spacing"`
	HueSpeed     float64 `yaml:"hue_speed"`
	StrokeWeight float64 `yaml:"stroke_weight"`
}

// MeshConfig holds the interactive height mesh parameters.
type MeshConfig struct {
	Cols          int     `yaml:"cols"`
	Rows          int     `yaml:"rows"`
	AngleStep     float64 `yaml:"angle_step"`
	NoiseScale    float64 `yaml:"noise_scale"`
	NoiseHeight   float64 `yaml:"noise_height"`
	WaveFrequency float64 `yaml:"wave_frequency"`
	WaveHeight    float64 `yaml:"wave_height"`
	PointerRadius float64 `yaml:"pointer_radius"`
	PointerHeight float64 `yaml:"pointer_height"`
	StrokeWeight  float64 `yaml:"stroke_weight"`
}

// EmitterConfig holds the orbiting emitter parameters.
type EmitterConfig struct {
	PerFrame     int     `yaml:"per_frame"`
	Spread       float64 `yaml:"spread"`
	Lifespan     int     `yaml:"lifespan"`
	Decay        int     `yaml:"decay"`
	Gravity      float64 `yaml:"gravity"`
	OrbitSpeed   float64 `yaml:"orbit_speed"`
	OrbitRadius  float64 `yaml:"orbit_radius"` // fraction of width/height
	HueMin       float64 `yaml:"hue_min"`
	HueMax       float64 `yaml:"hue_max"`
	MinSize      float64 `yaml:"min_size"`
	MaxSize      float64 `yaml:"max_size"`
	InitialSpeed float64 `yaml:"initial_speed"`
}

// ViewConfig describes one gallery view.
type ViewConfig struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Sketch string `yaml:"sketch"` // empty = background only
}

// StageConfig holds the gallery host parameters.
type StageConfig struct {
	DefaultWidth  int          `yaml:"default_width"`
	DefaultHeight int          `yaml:"default_height"`
	PanelHeight   int          `yaml:"panel_height"`
	PanelMargin   int          `yaml:"panel_margin"`
	Views         []ViewConfig `yaml:"views"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ViewIndex map[string]int // view id -> index into Stage.Views
}

// SketchKinds lists the values accepted for a view's sketch field.
var SketchKinds = map[string]bool{
	"flow":    true,
	"wave":    true,
	"mesh":    true,
	"emitter": true,
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Noise.Backend {
	case "", "perlin", "opensimplex", "aquilax":
	default:
		return fmt.Errorf("noise.backend %q: want perlin, opensimplex or aquilax", c.Noise.Backend)
	}
	if c.Mesh.Cols < 2 || c.Mesh.Rows < 2 {
		return fmt.Errorf("mesh grid %dx%d: need at least 2x2", c.Mesh.Cols, c.Mesh.Rows)
	}
	if c.Wave.AngleStep <= 0 {
		return fmt.Errorf("wave.angle_step must be positive, got %v", c.Wave.AngleStep)
	}
	if c.Emitter.Decay <= 0 {
		return fmt.Errorf("emitter.decay must be positive, got %d", c.Emitter.Decay)
	}
	seen := make(map[string]bool, len(c.Stage.Views))
	for _, v := range c.Stage.Views {
		if v.ID == "" {
			return fmt.Errorf("stage view with empty id")
		}
		if seen[v.ID] {
			return fmt.Errorf("duplicate stage view %q", v.ID)
		}
		seen[v.ID] = true
		if v.Sketch != "" && !SketchKinds[v.Sketch] {
			return fmt.Errorf("stage view %q: unknown sketch %q", v.ID, v.Sketch)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Noise.Backend == "" {
		c.Noise.Backend = "perlin"
	}
	if c.Stage.DefaultWidth <= 0 {
		c.Stage.DefaultWidth = 400
	}
	if c.Stage.DefaultHeight <= 0 {
		c.Stage.DefaultHeight = 400
	}

	c.Derived.ViewIndex = make(map[string]int, len(c.Stage.Views))
	for i, v := range c.Stage.Views {
		c.Derived.ViewIndex[v.ID] = i
	}
}

// View returns the view with the given id.
func (c *Config) View(id string) (ViewConfig, bool) {
	i, ok := c.Derived.ViewIndex[id]
	if !ok {
		return ViewConfig{}, false
	}
	return c.Stage.Views[i], true
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
