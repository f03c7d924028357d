package backdrop

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	css "github.com/mazznoer/csscolorparser"
)

// ParseColor parses any CSS color string ("#6366f1", "rgb(...)", "indigo").
func ParseColor(s string) (Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

// ColorFromHSL converts hue (turns, [0, 1)), saturation and lightness to an
// opaque Color.
func ColorFromHSL(h, s, l float64) Color {
	c := colorful.Hsl(h*360, s, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}
