// Package config loads the simulation settings from YAML. Every field has a
// default, so a file only needs to name what it changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/tds/internal/core/bullet"
	"github.com/zeusync/tds/internal/core/daycycle"
	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/items"
	"github.com/zeusync/tds/internal/core/lighting"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
	"github.com/zeusync/tds/internal/core/world"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Log      log.Config     `yaml:"log"`
	Map      MapConfig      `yaml:"map"`
	Bullet   BulletConfig   `yaml:"bullet"`
	Player   PlayerConfig   `yaml:"player"`
	Gun      GunConfig      `yaml:"gun"`
	Lighting LightingConfig `yaml:"lighting"`
	DayCycle DayCycleConfig `yaml:"day_cycle"`
	Sim      SimConfig      `yaml:"sim"`
}

type MapConfig struct {
	// Path is a .tmx file, or a raw CSV export when Width and Height are set.
	Path   string        `yaml:"path"`
	Width  int           `yaml:"width"`
	Height int           `yaml:"height"`
	Spawn  geometry.Vec2 `yaml:"spawn"`
}

type BulletConfig struct {
	Speed          float32 `yaml:"speed"`
	MuzzleOffset   float32 `yaml:"muzzle_offset"`
	SpawnCheckSize float32 `yaml:"spawn_check_size"`
	Drag           float32 `yaml:"drag"`
	StopThreshold  float32 `yaml:"stop_threshold"`
	Bounciness     float32 `yaml:"bounciness"`
	PushEpsilon    float32 `yaml:"push_epsilon"`
	ColliderSize   float32 `yaml:"collider_size"`
	// TieBreak is "origin" or "bullet".
	TieBreak string         `yaml:"tie_break"`
	Shrapnel ShrapnelConfig `yaml:"shrapnel"`
}

type ShrapnelConfig struct {
	Even        int     `yaml:"even"`
	Random      int     `yaml:"random"`
	Speed       float32 `yaml:"speed"`
	SpeedMargin float32 `yaml:"speed_margin"`
}

type PlayerConfig struct {
	Size             float32 `yaml:"size"`
	Speed            float32 `yaml:"speed"`
	Acceleration     float32 `yaml:"acceleration"`
	FlashlightRadius float32 `yaml:"flashlight_radius"`
	FlashlightAngle  float32 `yaml:"flashlight_angle"`
}

type GunConfig struct {
	Magazine     uint32  `yaml:"magazine"`
	Accuracy     float32 `yaml:"accuracy"`
	FireInterval float32 `yaml:"fire_interval"`
}

type LightingConfig struct {
	MaxLights int `yaml:"max_lights"`
}

type DayCycleConfig struct {
	// Length of a full day in seconds.
	Length float32 `yaml:"length"`
	// Start optionally jumps to a phase: dawn, noon, dusk or midnight.
	Start string `yaml:"start"`
}

type SimConfig struct {
	TickRate int `yaml:"tick_rate"`
	// Frames stops the run after this many steps. Zero runs until interrupted.
	Frames     int                 `yaml:"frames"`
	Seed       uint64              `yaml:"seed"`
	StatsEvery time.Duration       `yaml:"stats_every"`
	Realtime   bool                `yaml:"realtime"`
	Script     []player.ScriptStep `yaml:"script"`
}

// Default returns the tuning the game ships with.
func Default() *Config {
	b := bullet.DefaultParams()
	w := world.DefaultParams()
	p := player.DefaultParams()
	g := items.NewAssaultRifle()

	return &Config{
		Log: log.Config{Level: "info", Encoding: "json"},
		Map: MapConfig{
			Path:  "assets/maps/map0.tmx",
			Spawn: geometry.Vec2{64, 64},
		},
		Bullet: BulletConfig{
			Speed:          w.BulletSpeed,
			MuzzleOffset:   w.MuzzleOffset,
			SpawnCheckSize: w.SpawnCheckSize,
			Drag:           b.Drag,
			StopThreshold:  b.StopThreshold,
			Bounciness:     b.Bounciness,
			PushEpsilon:    b.PushEpsilon,
			ColliderSize:   b.ColliderSize,
			TieBreak:       "origin",
			Shrapnel: ShrapnelConfig{
				Even:        w.Shrapnel.Even,
				Random:      w.Shrapnel.Random,
				Speed:       w.Shrapnel.Speed,
				SpeedMargin: w.Shrapnel.SpeedMargin,
			},
		},
		Player: PlayerConfig{
			Size:             p.Size,
			Speed:            p.Speed,
			Acceleration:     p.Acceleration,
			FlashlightRadius: p.FlashlightRadius,
			FlashlightAngle:  p.FlashlightAngle,
		},
		Gun: GunConfig{
			Magazine:     g.Mag.Max,
			Accuracy:     g.Accuracy,
			FireInterval: g.FireInterval,
		},
		Lighting: LightingConfig{MaxLights: lighting.MaxLights},
		DayCycle: DayCycleConfig{Length: daycycle.FullCycleLength},
		Sim: SimConfig{
			TickRate:   60,
			Seed:       1,
			StatsEvery: time.Second,
		},
	}
}

// LoadYAML decodes r over Default. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and validates the YAML file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// Validate reports every problem at once, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	check(c.Map.Path != "", "map.path is empty")
	check(c.Map.Width >= 0 && c.Map.Height >= 0, "map size must not be negative")

	check(c.Bullet.Speed > 0, "bullet.speed must be positive, got %v", c.Bullet.Speed)
	check(c.Bullet.Drag >= 0, "bullet.drag must not be negative, got %v", c.Bullet.Drag)
	check(c.Bullet.StopThreshold >= 0, "bullet.stop_threshold must not be negative, got %v", c.Bullet.StopThreshold)
	check(c.Bullet.Bounciness >= 0 && c.Bullet.Bounciness <= 1, "bullet.bounciness must be in [0, 1], got %v", c.Bullet.Bounciness)
	check(c.Bullet.PushEpsilon >= 0, "bullet.push_epsilon must not be negative, got %v", c.Bullet.PushEpsilon)
	check(c.Bullet.SpawnCheckSize > 0, "bullet.spawn_check_size must be positive, got %v", c.Bullet.SpawnCheckSize)
	if _, err := parseTieBreak(c.Bullet.TieBreak); err != nil {
		errs = append(errs, err)
	}
	check(c.Bullet.Shrapnel.Even >= 0 && c.Bullet.Shrapnel.Random >= 0, "bullet.shrapnel counts must not be negative")
	check(c.Bullet.Shrapnel.SpeedMargin >= 0 && c.Bullet.Shrapnel.SpeedMargin < 1,
		"bullet.shrapnel.speed_margin must be in [0, 1), got %v", c.Bullet.Shrapnel.SpeedMargin)

	check(c.Player.Size > 0, "player.size must be positive, got %v", c.Player.Size)
	check(c.Player.Speed >= 0, "player.speed must not be negative, got %v", c.Player.Speed)
	check(c.Player.Acceleration > 0, "player.acceleration must be positive, got %v", c.Player.Acceleration)

	check(c.Gun.Magazine > 0, "gun.magazine must be positive")
	check(c.Gun.FireInterval >= 0, "gun.fire_interval must not be negative, got %v", c.Gun.FireInterval)

	check(c.Lighting.MaxLights > 0 && c.Lighting.MaxLights <= lighting.MaxLights,
		"lighting.max_lights must be in [1, %d], got %d", lighting.MaxLights, c.Lighting.MaxLights)

	check(c.DayCycle.Length > 0, "day_cycle.length must be positive, got %v", c.DayCycle.Length)
	if c.DayCycle.Start != "" {
		if _, err := daycycle.ParsePhase(c.DayCycle.Start); err != nil {
			errs = append(errs, err)
		}
	}

	check(c.Sim.TickRate > 0, "sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	check(c.Sim.Frames >= 0, "sim.frames must not be negative, got %d", c.Sim.Frames)
	for i, s := range c.Sim.Script {
		check(s.Frames >= 0, "sim.script[%d].frames must not be negative", i)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// TickDuration is the fixed simulation step.
func (c *Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Sim.TickRate)
}

// FrameTime is TickDuration in seconds.
func (c *Config) FrameTime() float32 {
	return 1 / float32(c.Sim.TickRate)
}

func parseTieBreak(s string) (bullet.TieBreak, error) {
	switch s {
	case "", "origin":
		return bullet.TieBreakOrigin, nil
	case "bullet":
		return bullet.TieBreakBullet, nil
	default:
		return 0, fmt.Errorf("unknown bullet.tie_break %q", s)
	}
}

func (c *Config) BulletParams() bullet.Params {
	tb, _ := parseTieBreak(c.Bullet.TieBreak)
	return bullet.Params{
		Drag:          c.Bullet.Drag,
		StopThreshold: c.Bullet.StopThreshold,
		Bounciness:    c.Bullet.Bounciness,
		PushEpsilon:   c.Bullet.PushEpsilon,
		ColliderSize:  c.Bullet.ColliderSize,
		TieBreak:      tb,
	}
}

func (c *Config) WorldParams() world.Params {
	bp := c.BulletParams()
	return world.Params{
		BulletSpeed:    c.Bullet.Speed,
		MuzzleOffset:   c.Bullet.MuzzleOffset,
		SpawnCheckSize: c.Bullet.SpawnCheckSize,
		Bullet:         bp,
		Shrapnel: world.ShrapnelParams{
			Even:        c.Bullet.Shrapnel.Even,
			Random:      c.Bullet.Shrapnel.Random,
			Speed:       c.Bullet.Shrapnel.Speed,
			SpeedMargin: c.Bullet.Shrapnel.SpeedMargin,
			Bullet:      bp,
		},
	}
}

func (c *Config) PlayerParams() player.Params {
	return player.Params{
		Size:             c.Player.Size,
		Speed:            c.Player.Speed,
		Acceleration:     c.Player.Acceleration,
		FlashlightRadius: c.Player.FlashlightRadius,
		FlashlightAngle:  c.Player.FlashlightAngle,
	}
}

// NewGun builds a loaded gun from the gun section.
func (c *Config) NewGun() *items.Gun {
	return &items.Gun{
		Mag:           items.Magazine{Bullets: c.Gun.Magazine, Max: c.Gun.Magazine},
		Accuracy:      c.Gun.Accuracy,
		FireInterval:  c.Gun.FireInterval,
		TimeSinceShot: c.Gun.FireInterval,
	}
}
