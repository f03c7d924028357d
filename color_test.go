package backdrop

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Color{1, 0, 0, 1}},
		{"#00ff00", Color{0, 1, 0, 1}},
		{"#6366f1", Color{99.0 / 255, 102.0 / 255, 241.0 / 255, 1}},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 1, 0.5}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if !approxEqual(got.R, tt.want.R, 1e-6) || !approxEqual(got.G, tt.want.G, 1e-6) ||
			!approxEqual(got.B, tt.want.B, 1e-6) || !approxEqual(got.A, tt.want.A, 1e-6) {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, s := range []string{"not-a-color", "#12"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) accepted", s)
		}
	}
}

func TestColorFromHSL(t *testing.T) {
	red := ColorFromHSL(0, 1, 0.5)
	if !approxEqual(red.R, 1, 1e-6) || !approxEqual(red.G, 0, 1e-6) || !approxEqual(red.B, 0, 1e-6) {
		t.Errorf("hue 0 = %v, want red", red)
	}
	blue := ColorFromHSL(2.0/3, 1, 0.5)
	if !approxEqual(blue.B, 1, 1e-6) || !approxEqual(blue.R, 0, 1e-6) {
		t.Errorf("hue 2/3 = %v, want blue", blue)
	}
	if red.A != 1 {
		t.Errorf("alpha = %v, want 1", red.A)
	}
	grey := ColorFromHSL(0.3, 0, 0.5)
	if !approxEqual(grey.R, grey.G, 1e-9) || !approxEqual(grey.G, grey.B, 1e-9) {
		t.Errorf("zero saturation = %v, want grey", grey)
	}
}
