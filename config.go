package backdrop

import (
	"encoding/json"
	"fmt"
	"math"
)

// Defaults applied by DefaultConfig.
const (
	DefaultDensity        = 20
	DefaultAmplitude      = 30.0
	DefaultCount          = 1000
	DefaultRadius         = 5.0
	DefaultViewportWidth  = 1280.0
	DefaultViewportHeight = 982.0
	DefaultScrub          = 1.0
	DefaultFadeIn         = 1.0
)

// DefaultGridColor fills the grid-warp quads when no colors are configured.
const DefaultGridColor = "#6366f1"

// DefaultRibbonColors is the ribbon palette used when no colors are configured.
// One ribbon is drawn per color.
var DefaultRibbonColors = []string{
	"#60A5FA", // blue
	"#C084FC", // purple
	"#F472B6", // pink
	"#818CF8", // indigo
	"#22D3EE", // cyan
	"#2DD4BF", // teal
}

// Config is the activation config handed to Loop.Start. Start from
// DefaultConfig and override fields; zero values are not replaced by defaults
// and fail validation where they are out of range.
type Config struct {
	// Mode selects the visual mode.
	Mode ModeKind `json:"mode"`
	// Density is the number of grid columns (grid warp).
	Density int `json:"density"`
	// Amplitude is the maximum pointer displacement in pixels (grid warp).
	Amplitude float64 `json:"amplitude"`
	// Colors are CSS color strings. Grid warp fills with the first; ribbon
	// mode draws one ribbon per entry. Nil selects the mode's default palette.
	Colors []string `json:"colors"`
	// Count is the number of particles (particle field).
	Count int `json:"count"`
	// Radius is the particle sphere radius in world units (particle field).
	Radius float64 `json:"radius"`
	// Seed makes particle generation reproducible when non-zero.
	Seed uint64 `json:"seed"`
	// Scrub is the catch-up time in seconds for scroll-linked transforms.
	// Zero follows scroll progress immediately.
	Scrub float64 `json:"scrub"`
	// FadeIn is the mount fade duration in seconds. Zero disables it.
	FadeIn float64 `json:"fadeIn"`
	// ViewportWidth and ViewportHeight are the drawing area in device pixels.
	ViewportWidth  float64 `json:"viewportWidth"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// DefaultConfig returns a grid-warp config with every optional field set to
// its default.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeGridWarp,
		Density:        DefaultDensity,
		Amplitude:      DefaultAmplitude,
		Count:          DefaultCount,
		Radius:         DefaultRadius,
		Scrub:          DefaultScrub,
		FadeIn:         DefaultFadeIn,
		ViewportWidth:  DefaultViewportWidth,
		ViewportHeight: DefaultViewportHeight,
	}
}

// LoadConfig parses a JSON activation config on top of DefaultConfig.
// Missing fields keep their defaults and unrecognized fields are ignored.
func LoadConfig(jsonData []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonData, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// MarshalText implements encoding.TextMarshaler.
func (k ModeKind) MarshalText() ([]byte, error) {
	if int(k) >= len(modeNames) {
		return nil, &ConfigError{Field: "mode", Value: int(k), Reason: "unknown mode"}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModeKind) UnmarshalText(text []byte) error {
	m, ok := ParseModeKind(string(text))
	if !ok {
		return &ConfigError{Field: "mode", Value: string(text), Reason: "unknown mode"}
	}
	*k = m
	return nil
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if int(c.Mode) >= len(modeNames) {
		return &ConfigError{Field: "mode", Value: int(c.Mode), Reason: "unknown mode"}
	}
	if !positiveFinite(c.ViewportWidth) {
		return &ConfigError{Field: "viewportWidth", Value: c.ViewportWidth, Reason: "must be positive and finite"}
	}
	if !positiveFinite(c.ViewportHeight) {
		return &ConfigError{Field: "viewportHeight", Value: c.ViewportHeight, Reason: "must be positive and finite"}
	}
	if c.Density <= 0 {
		return &ConfigError{Field: "density", Value: c.Density, Reason: "must be >= 1"}
	}
	if c.Count <= 0 {
		return &ConfigError{Field: "count", Value: c.Count, Reason: "must be >= 1"}
	}
	if math.IsNaN(c.Amplitude) || math.IsInf(c.Amplitude, 0) {
		return &ConfigError{Field: "amplitude", Value: c.Amplitude, Reason: "must be finite"}
	}
	if !positiveFinite(c.Radius) {
		return &ConfigError{Field: "radius", Value: c.Radius, Reason: "must be positive and finite"}
	}
	if c.Scrub < 0 || math.IsNaN(c.Scrub) || math.IsInf(c.Scrub, 0) {
		return &ConfigError{Field: "scrub", Value: c.Scrub, Reason: "must be >= 0 and finite"}
	}
	if c.FadeIn < 0 || math.IsNaN(c.FadeIn) || math.IsInf(c.FadeIn, 0) {
		return &ConfigError{Field: "fadeIn", Value: c.FadeIn, Reason: "must be >= 0 and finite"}
	}
	if c.Colors != nil && len(c.Colors) == 0 {
		return &ConfigError{Field: "colors", Value: c.Colors, Reason: "must not be empty"}
	}
	if _, err := c.palette(); err != nil {
		return err
	}
	return nil
}

// palette resolves Colors, falling back to the mode's default palette.
func (c Config) palette() ([]Color, error) {
	src := c.Colors
	if src == nil {
		if c.Mode == ModeRibbon {
			src = DefaultRibbonColors
		} else {
			src = []string{DefaultGridColor}
		}
	}
	out := make([]Color, len(src))
	for i, s := range src {
		col, err := ParseColor(s)
		if err != nil {
			return nil, &ConfigError{Field: fmt.Sprintf("colors[%d]", i), Value: s, Reason: err.Error()}
		}
		out[i] = col
	}
	return out, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
