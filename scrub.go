package backdrop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrubber makes a value catch up with a moving target over a fixed time,
// the way scroll-scrubbed animations lag behind the scrollbar. Each new
// target restarts the tween from the current value.
type scrubber struct {
	duration float32
	value    float64
	target   float64
	tween    *gween.Tween
}

// newScrubber creates a scrubber with the given catch-up time in seconds.
// A duration of zero snaps to every target immediately.
func newScrubber(seconds float64) *scrubber {
	return &scrubber{duration: float32(seconds)}
}

// Set retargets the scrubber.
func (s *scrubber) Set(target float64) {
	if target == s.target {
		return
	}
	s.target = target
	if s.duration <= 0 {
		s.value = target
		s.tween = nil
		return
	}
	s.tween = gween.New(float32(s.value), float32(target), s.duration, ease.OutQuad)
}

// Update advances the tween by dt seconds and returns the current value.
func (s *scrubber) Update(dt float64) float64 {
	if s.tween == nil {
		return s.value
	}
	val, done := s.tween.Update(float32(dt))
	s.value = float64(val)
	if done {
		s.value = s.target
		s.tween = nil
	}
	return s.value
}

// Value returns the current value without advancing.
func (s *scrubber) Value() float64 {
	return s.value
}
