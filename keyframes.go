package backdrop

import "github.com/tanema/gween/ease"

// Keyframes maps an input in [Stops[0], Stops[n-1]] to an output by
// interpolating between explicit (stop, value) pairs. Inputs outside the
// stops clamp to the first or last value. Each segment is eased with Ease
// (ease.Linear when nil), so the default is piecewise-linear.
type Keyframes struct {
	Stops  []float64
	Values []float64
	Ease   ease.TweenFunc
}

// At evaluates the keyframes at p.
func (k Keyframes) At(p float64) float64 {
	n := len(k.Stops)
	if n == 0 || len(k.Values) != n {
		return 0
	}
	if p <= k.Stops[0] {
		return k.Values[0]
	}
	if p >= k.Stops[n-1] {
		return k.Values[n-1]
	}
	fn := k.Ease
	if fn == nil {
		fn = ease.Linear
	}
	for i := 1; i < n; i++ {
		s1 := k.Stops[i]
		if p > s1 {
			continue
		}
		s0, v0, v1 := k.Stops[i-1], k.Values[i-1], k.Values[i]
		if s1 <= s0 || v0 == v1 {
			return v1
		}
		return float64(fn(float32(p-s0), float32(v0), float32(v1-v0), float32(s1-s0)))
	}
	return k.Values[n-1]
}
