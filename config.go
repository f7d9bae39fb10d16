package evergreen

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces every environment override, e.g. EVERGREEN_SEED.
const envPrefix = "EVERGREEN_"

var (
	// ErrInvalidConfig is wrapped by every Validate failure.
	ErrInvalidConfig = errors.New("invalid scene config")
	// ErrDegenerateCamera reports camera constants for which the perspective
	// denominator can reach zero for some reachable depth.
	ErrDegenerateCamera = errors.New("degenerate camera")
)

// Memory is one image marker entry: an asset reference (file path or URL)
// and the title shown when it is selected.
type Memory struct {
	Ref   string `yaml:"ref"`
	Title string `yaml:"title"`
}

// ParticleCounts sets the population of each layer. Zero or negative counts
// produce an empty layer.
type ParticleCounts struct {
	Tree  int `yaml:"tree" env:"TREE"`
	Snow  int `yaml:"snow" env:"SNOW"`
	Floor int `yaml:"floor" env:"FLOOR"`
	Stars int `yaml:"stars" env:"STARS"`
}

// TreeConfig describes the world-space geometry of the tree and its floor.
type TreeConfig struct {
	Height      float64 `yaml:"height" env:"HEIGHT"`
	BaseRadius  float64 `yaml:"baseRadius" env:"BASE_RADIUS"`
	BaseLift    float64 `yaml:"baseLift" env:"BASE_LIFT"`
	FloorRadius float64 `yaml:"floorRadius" env:"FLOOR_RADIUS"`
	SnowDepth   float64 `yaml:"snowDepth" env:"SNOW_DEPTH"`
	// RotationSpeed is the global spin in radians per tick.
	RotationSpeed float64 `yaml:"rotationSpeed" env:"ROTATION_SPEED"`
}

// CameraConfig holds the single-camera projection constants.
type CameraConfig struct {
	FOV          float64 `yaml:"fov" env:"FOV"`
	Offset       float64 `yaml:"offset" env:"OFFSET"`
	VerticalTrim float64 `yaml:"verticalTrim" env:"VERTICAL_TRIM"`
}

// RevealConfig drives the reveal state machine.
type RevealConfig struct {
	Speed          float64 `yaml:"speed" env:"SPEED"`
	Ceiling        float64 `yaml:"ceiling" env:"CEILING"`
	TipBand        float64 `yaml:"tipBand" env:"TIP_BAND"`
	Lookahead      float64 `yaml:"lookahead" env:"LOOKAHEAD"`
	FloorThreshold float64 `yaml:"floorThreshold" env:"FLOOR_THRESHOLD"`
	CrownThreshold float64 `yaml:"crownThreshold" env:"CROWN_THRESHOLD"`
}

// SleighConfig drives the sleigh traversal and its dust trail.
type SleighConfig struct {
	Speed float64 `yaml:"speed" env:"SPEED"`
	// RespawnChance is the per-tick probability of reactivating while inactive.
	RespawnChance float64 `yaml:"respawnChance" env:"RESPAWN_CHANCE"`
	// TrailInterval spawns one trail particle every TrailInterval ticks.
	TrailInterval int `yaml:"trailInterval" env:"TRAIL_INTERVAL"`
	// MaxTrail caps the trail pool; spawns beyond it are dropped.
	MaxTrail int `yaml:"maxTrail" env:"MAX_TRAIL"`
}

// GreetingConfig is the overlay text shown once the tree is fully revealed.
type GreetingConfig struct {
	Title    string `yaml:"title" env:"TITLE"`
	Subtitle string `yaml:"subtitle" env:"SUBTITLE"`
	// FadeSeconds is how long the greeting takes to fade in.
	FadeSeconds float64 `yaml:"fadeSeconds" env:"FADE_SECONDS"`
}

// Config is the full scene configuration. Build one with DefaultConfig and
// overlay a YAML file and the environment with LoadConfig.
type Config struct {
	Seed     uint64   `yaml:"seed" env:"SEED"`
	Debug    bool     `yaml:"debug" env:"DEBUG"`
	Music    string   `yaml:"music" env:"MUSIC"`
	Memories []Memory `yaml:"memories"`
	Palette  []RGB    `yaml:"palette"`

	Particles ParticleCounts `yaml:"particles" envPrefix:"PARTICLES_"`
	Tree      TreeConfig     `yaml:"tree" envPrefix:"TREE_"`
	Camera    CameraConfig   `yaml:"camera" envPrefix:"CAMERA_"`
	Reveal    RevealConfig   `yaml:"reveal" envPrefix:"REVEAL_"`
	Sleigh    SleighConfig   `yaml:"sleigh" envPrefix:"SLEIGH_"`
	Greeting  GreetingConfig `yaml:"greeting" envPrefix:"GREETING_"`
}

// DefaultPalette is the seven-color rainbow used for tree particles.
var DefaultPalette = []RGB{
	{255, 60, 60},   // red
	{255, 140, 0},   // orange
	{255, 255, 60},  // yellow
	{60, 255, 60},   // green
	{60, 160, 255},  // blue
	{100, 100, 255}, // indigo
	{220, 100, 255}, // violet
}

// DefaultConfig returns the stock scene constants.
func DefaultConfig() *Config {
	return &Config{
		Seed:    1225,
		Palette: append([]RGB(nil), DefaultPalette...),
		Particles: ParticleCounts{
			Tree:  2800,
			Snow:  300,
			Floor: 400,
			Stars: 200,
		},
		Tree: TreeConfig{
			Height:        500,
			BaseRadius:    180,
			BaseLift:      50,
			FloorRadius:   300,
			SnowDepth:     500,
			RotationSpeed: 0.005,
		},
		Camera: CameraConfig{
			FOV:          800,
			Offset:       400,
			VerticalTrim: 50,
		},
		Reveal: RevealConfig{
			Speed:          0.003,
			Ceiling:        1.1,
			TipBand:        0.05,
			Lookahead:      0.1,
			FloorThreshold: 0.1,
			CrownThreshold: 1.0,
		},
		Sleigh: SleighConfig{
			Speed:         3,
			RespawnChance: 0.002,
			TrailInterval: 3,
			MaxTrail:      256,
		},
		Greeting: GreetingConfig{
			Title:       "Merry Christmas",
			Subtitle:    "Wishing you a bright and happy Noel",
			FadeSeconds: 2,
		},
	}
}

// LoadConfig reads a YAML scene file on top of DefaultConfig, applies
// EVERGREEN_* environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene config: %w", err)
	}
	cfg, err := ParseConfig(data, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML data on top of DefaultConfig and applies
// environment overrides. A nil environ reads the process environment.
func ParseConfig(data []byte, environ map[string]string) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays EVERGREEN_* variables onto c. Unset variables leave the
// current value untouched. A nil environ reads the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks c for values the engine cannot render. Camera constants
// are checked against the deepest reachable point of every layer.
func (c *Config) Validate() error {
	if name, ok := c.nonFinite(); ok {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, name)
	}
	switch {
	case len(c.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	case c.Tree.Height <= 0:
		return fmt.Errorf("%w: tree height %v must be positive", ErrInvalidConfig, c.Tree.Height)
	case c.Tree.BaseRadius < 0 || c.Tree.FloorRadius < 0 || c.Tree.SnowDepth < 0:
		return fmt.Errorf("%w: radii and snow depth must not be negative", ErrInvalidConfig)
	case c.Reveal.Speed <= 0:
		return fmt.Errorf("%w: reveal speed %v must be positive", ErrInvalidConfig, c.Reveal.Speed)
	case c.Reveal.Ceiling < 1:
		return fmt.Errorf("%w: reveal ceiling %v must be at least 1", ErrInvalidConfig, c.Reveal.Ceiling)
	case c.Reveal.TipBand < 0:
		return fmt.Errorf("%w: tip band %v must not be negative", ErrInvalidConfig, c.Reveal.TipBand)
	case c.Sleigh.TrailInterval <= 0:
		return fmt.Errorf("%w: trail interval %d must be positive", ErrInvalidConfig, c.Sleigh.TrailInterval)
	case c.Greeting.FadeSeconds < 0:
		return fmt.Errorf("%w: greeting fade %v must not be negative", ErrInvalidConfig, c.Greeting.FadeSeconds)
	case c.Sleigh.RespawnChance < 0 || c.Sleigh.RespawnChance > 1:
		return fmt.Errorf("%w: respawn chance %v must be within [0, 1]", ErrInvalidConfig, c.Sleigh.RespawnChance)
	}
	if err := checkCamera(c.Camera, c.maxReach()); err != nil {
		return err
	}
	return nil
}

// nonFinite names the first NaN or infinite float field, if any. Camera
// fields are left to checkCamera.
func (c *Config) nonFinite() (string, bool) {
	fields := []struct {
		name string
		v    float64
	}{
		{"tree height", c.Tree.Height},
		{"tree base radius", c.Tree.BaseRadius},
		{"tree base lift", c.Tree.BaseLift},
		{"floor radius", c.Tree.FloorRadius},
		{"snow depth", c.Tree.SnowDepth},
		{"rotation speed", c.Tree.RotationSpeed},
		{"reveal speed", c.Reveal.Speed},
		{"reveal ceiling", c.Reveal.Ceiling},
		{"tip band", c.Reveal.TipBand},
		{"reveal lookahead", c.Reveal.Lookahead},
		{"floor threshold", c.Reveal.FloorThreshold},
		{"crown threshold", c.Reveal.CrownThreshold},
		{"sleigh speed", c.Sleigh.Speed},
		{"respawn chance", c.Sleigh.RespawnChance},
		{"greeting fade", c.Greeting.FadeSeconds},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return f.name, true
		}
	}
	return "", false
}

// maxReach is the largest |world-z| any particle can reach.
func (c *Config) maxReach() float64 {
	reach := c.Tree.BaseRadius + markerRadiusBoost
	reach = max(reach, c.Tree.FloorRadius)
	reach = max(reach, c.Tree.SnowDepth/2)
	return reach
}

// UnmarshalYAML accepts either a [r, g, b] sequence or an {r, g, b} mapping.
func (c *RGB) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.SequenceNode {
		var v []uint8
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("palette entry: %w", err)
		}
		if len(v) != 3 {
			return fmt.Errorf("palette entry: want 3 components, got %d", len(v))
		}
		c.R, c.G, c.B = v[0], v[1], v[2]
		return nil
	}
	type plain RGB
	return n.Decode((*plain)(c))
}
