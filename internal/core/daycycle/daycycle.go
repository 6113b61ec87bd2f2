// Package daycycle drives the ambient light and shadow strength through a
// repeating day. Time is kept in seconds and mostly handled normalised to
// [0, 1), where 0 is sunrise.
package daycycle

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/zeusync/tds/internal/core/geometry"
	"github.com/zeusync/tds/internal/core/lighting"
)

const (
	// FullCycleLength is the length of one day in seconds.
	FullCycleLength float32 = 60

	Sunrise           float32 = 0
	Noon              float32 = 0.25
	Sunset            float32 = 0.5
	Midnight          float32 = 0.75
	SunriseLength     float32 = 0.09
	SunsetLength      float32 = 0.11
	ToNoonPhaseLength float32 = 0.1

	// DefaultShadowAlpha is the shadow opacity in full daylight.
	DefaultShadowAlpha float32 = 55
)

var (
	DayColor     = geometry.Vec4{1, 1, 1, 1}
	SunriseColor = geometry.Vec4{0.5, 0.6, 0.8, 1}
	SunsetColor  = geometry.Vec4{0.86, 0.52, 0.4, 1}
	NightColor   = geometry.Vec4{0, 0.03, 0.07, 1}
)

// Phase is a named point in the day that JumpTo can skip to.
type Phase uint8

const (
	Dawn Phase = iota
	Midday
	Dusk
	Night
)

func (p Phase) String() string {
	switch p {
	case Dawn:
		return "dawn"
	case Midday:
		return "noon"
	case Dusk:
		return "dusk"
	case Night:
		return "midnight"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p := Dawn; p <= Night; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown day phase %q", s)
}

type DayCycle struct {
	time    float32
	length  float32
	ambient lighting.Handle
}

// New spawns the ambient light in engine and starts the clock at sunrise.
// A non-positive length means FullCycleLength.
func New(engine *lighting.Engine, length float32) (*DayCycle, error) {
	if length <= 0 {
		length = FullCycleLength
	}
	h, err := engine.Spawn(lighting.DefaultAmbient())
	if err != nil {
		return nil, fmt.Errorf("spawn ambient light: %w", err)
	}
	return &DayCycle{time: Sunrise * length, length: length, ambient: h}, nil
}

// Update advances the clock by dt seconds and pushes the current ambient
// colour into engine.
func (d *DayCycle) Update(dt float32, engine *lighting.Engine) error {
	d.time += dt
	for d.time > d.length {
		d.time -= d.length
	}
	return engine.Update(d.ambient, d.AmbientLight())
}

// JumpTo moves the clock to the start of the transition into p.
func (d *DayCycle) JumpTo(p Phase) {
	switch p {
	case Dawn:
		d.time = d.length * (1 - SunriseLength)
	case Midday:
		d.time = d.length * Noon
	case Dusk:
		d.time = d.length * (Sunset - SunsetLength)
	case Night:
		d.time = d.length * Midnight
	}
}

// Time returns the clock in seconds since sunrise.
func (d *DayCycle) Time() float32 {
	return d.time
}

func (d *DayCycle) AmbientHandle() lighting.Handle {
	return d.ambient
}

func (d *DayCycle) NormalizedTime() float32 {
	return d.time / d.length
}

// AmbientLight returns the ambient light for the current time.
func (d *DayCycle) AmbientLight() lighting.Light {
	return lighting.Light{Kind: lighting.Ambient, Color: AmbientColor(d.NormalizedTime())}
}

// ShadowAlpha returns the shadow opacity for the current time in [0, 55].
func (d *DayCycle) ShadowAlpha() uint8 {
	return ShadowAlpha(d.NormalizedTime())
}

// Clock renders the time of day as "Game Time: h:mm AM".
func (d *DayCycle) Clock() string {
	return Clock(d.NormalizedTime())
}

// AmbientColor maps normalised time t onto the ambient colour. RGB is clamped
// to [0, 1]; alpha is always that of the phase's base colour.
func AmbientColor(t float32) geometry.Vec4 {
	c := blendAmbient(t)
	for i := 0; i < 3; i++ {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}

func blendAmbient(t float32) geometry.Vec4 {
	switch {
	case t >= 1-SunriseLength && t <= 1:
		// Night towards half sunrise.
		step := (t - (1 - SunriseLength)) / SunriseLength
		return add(NightColor, scale(sub(scale(SunriseColor, 0.5), NightColor), step))
	case t >= Sunrise && t <= SunriseLength:
		f := t*0.5/SunriseLength + 0.5
		return scale(SunriseColor, f)
	case t >= SunriseLength && t <= Noon-ToNoonPhaseLength:
		step := (t - SunriseLength) / (Noon - ToNoonPhaseLength - SunriseLength)
		return add(SunriseColor, scale(sub(DayColor, SunriseColor), step))
	case t >= Sunset-SunsetLength && t <= Sunset:
		step := (t - Sunset + SunsetLength) / SunsetLength
		return sub(DayColor, scale(sub(DayColor, SunsetColor), step))
	case t >= Sunset && t <= Sunset+SunsetLength:
		step := (t - Sunset) / SunsetLength
		return sub(SunsetColor, scale(sub(SunsetColor, NightColor), step))
	case t >= SunriseLength && t < 0.5-SunriseLength:
		return DayColor
	default:
		return NightColor
	}
}

// ShadowAlpha maps normalised time t onto shadow opacity.
func ShadowAlpha(t float32) uint8 {
	var a float32
	switch {
	case t > 1-SunriseLength:
		a = (t - (1 - SunriseLength)) / SunriseLength * DefaultShadowAlpha
	case t > Sunset:
		a = DefaultShadowAlpha - (t-Sunset)/SunsetLength*DefaultShadowAlpha
	default:
		a = DefaultShadowAlpha
	}
	return uint8(min(max(a, 0), DefaultShadowAlpha))
}

// Clock formats normalised time t as a 12-hour clock where sunrise is 6 AM.
func Clock(t float32) string {
	hour := int((t + 0.25) * 24)
	minute := int(t*24*60) % 60
	h12 := hour % 12
	if h12 == 0 {
		h12 = 12
	}
	suffix := "AM"
	if hour%24 >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("Game Time: %d:%02d %s", h12, minute, suffix)
}

func scale(v geometry.Vec4, f float32) geometry.Vec4 {
	return geometry.Vec4{v[0] * f, v[1] * f, v[2] * f, v[3]}
}

func add(a, b geometry.Vec4) geometry.Vec4 {
	return geometry.Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3]}
}

func sub(a, b geometry.Vec4) geometry.Vec4 {
	return geometry.Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3]}
}
