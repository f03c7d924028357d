package backdrop

import (
	"slices"
	"time"
)

// Sample is an immutable snapshot of the input signals at one point in time.
// The render loop reads the most recent Sample at every tick.
type Sample struct {
	// Pointer is the raw pointer position in device pixels. Only meaningful
	// when HasPointer is true.
	Pointer Vec2
	// HasPointer is false when no pointer signal is available (touch-only
	// device, pointer outside the window). Modes treat that as no force.
	HasPointer bool
	// Normalized is the pointer relative to the viewport center:
	// nx = (x - w/2)/w, ny = -(y - h/2)/h. Zero when HasPointer is false.
	Normalized Vec2
	// ScrollOffset is the raw scroll offset in pixels.
	ScrollOffset float64
	// ScrollProgress is ScrollOffset over the scrollable range, in [0, 1].
	ScrollProgress float64
	// ScrollVelocity is the offset delta in pixels since the previous sample.
	// Zero on the first sample.
	ScrollVelocity float64
	// Viewport is the width and height used for normalization.
	Viewport Vec2
	// Time is the tracker clock reading when the sample was produced.
	// Non-decreasing across samples.
	Time time.Duration
	// Seq increases by one with every sample.
	Seq uint64
}

// InputEvent carries one tracker update for an EventStore.
type InputEvent struct {
	Type   EventType
	Sample Sample
}

// EventStore is the interface for optional ECS integration.
// When set on an InputTracker, every input event is forwarded to it.
type EventStore interface {
	EmitEvent(event InputEvent)
}

// PointerListener receives pointer signals from a pointer-position publisher.
type PointerListener interface {
	PointerMove(x, y float64)
	PointerLeave()
}

// ScrollListener receives scroll signals from a scroll-position publisher.
type ScrollListener interface {
	Scroll(offset, scrollRange float64)
}

// --- Handler registry ---

type sampleHandler struct {
	id uint32
	fn func(Sample)
}

// CallbackHandle allows removing a registered sample listener.
type CallbackHandle struct {
	id      uint32
	tracker *InputTracker
}

// Remove unregisters this callback so it no longer fires.
// Calling Remove more than once is a no-op.
func (h CallbackHandle) Remove() {
	if h.tracker == nil {
		return
	}
	s := h.tracker.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = sampleHandler{}
			h.tracker.handlers = s[:len(s)-1]
			return
		}
	}
}

// InputTracker samples pointer position and scroll offset, normalizes both
// and notifies listeners. It is not safe for concurrent use; the host calls
// it from the same goroutine that drives the render loop.
type InputTracker struct {
	sample      Sample
	scrolled    bool
	clock       func() time.Duration
	handlers    []sampleHandler
	nextID      uint32
	store       EventStore
	injectQueue []syntheticEvent
}

// NewInputTracker creates a tracker for a viewport of the given size. Its
// clock starts at zero now.
func NewInputTracker(width, height float64) *InputTracker {
	start := time.Now()
	return &InputTracker{
		sample: Sample{Viewport: Vec2{X: width, Y: height}},
		clock:  func() time.Duration { return time.Since(start) },
	}
}

// SetClock replaces the timestamp source. Used by hosts with their own
// frame clock and by tests.
func (t *InputTracker) SetClock(fn func() time.Duration) {
	t.clock = fn
}

// SetEventStore sets the optional ECS bridge.
func (t *InputTracker) SetEventStore(store EventStore) {
	t.store = store
}

// Latest returns the most recent sample.
func (t *InputTracker) Latest() Sample {
	return t.sample
}

// OnSample registers a callback fired after every new sample.
func (t *InputTracker) OnSample(fn func(Sample)) CallbackHandle {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, sampleHandler{id: id, fn: fn})
	return CallbackHandle{id: id, tracker: t}
}

// ListenerCount returns the number of registered sample callbacks.
func (t *InputTracker) ListenerCount() int {
	return len(t.handlers)
}

// PointerMove records a pointer position in device pixels.
func (t *InputTracker) PointerMove(x, y float64) {
	s := t.next()
	s.Pointer = Vec2{X: x, Y: y}
	s.HasPointer = true
	s.Normalized = normalizePointer(x, y, s.Viewport.X, s.Viewport.Y)
	t.publish(EventPointerMove, s)
}

// PointerLeave records the loss of the pointer signal.
func (t *InputTracker) PointerLeave() {
	s := t.next()
	s.Pointer = Vec2{}
	s.HasPointer = false
	s.Normalized = Vec2{}
	t.publish(EventPointerLeave, s)
}

// Scroll records a scroll offset within a scrollable range of scrollRange
// pixels. A non-positive range yields zero progress.
func (t *InputTracker) Scroll(offset, scrollRange float64) {
	s := t.next()
	if t.scrolled {
		s.ScrollVelocity = offset - t.sample.ScrollOffset
	}
	t.scrolled = true
	s.ScrollOffset = offset
	if scrollRange > 0 {
		s.ScrollProgress = Clamp(offset/scrollRange, 0, 1)
	} else {
		s.ScrollProgress = 0
	}
	t.publish(EventScroll, s)
}

// Resize updates the viewport used for pointer normalization.
func (t *InputTracker) Resize(width, height float64) {
	s := t.next()
	s.Viewport = Vec2{X: width, Y: height}
	if s.HasPointer {
		s.Normalized = normalizePointer(s.Pointer.X, s.Pointer.Y, width, height)
	}
	t.publish(EventResize, s)
}

// next starts a new sample from the current one. Velocity only describes the
// step between two consecutive samples, so it is reset here.
func (t *InputTracker) next() Sample {
	s := t.sample
	s.Seq++
	s.ScrollVelocity = 0
	if now := t.clock(); now > s.Time {
		s.Time = now
	}
	return s
}

func (t *InputTracker) publish(typ EventType, s Sample) {
	t.sample = s
	// Handlers may add or remove handlers while running. Dispatch walks a
	// snapshot and skips entries removed since it was taken.
	for _, h := range slices.Clone(t.handlers) {
		if t.registered(h.id) {
			h.fn(s)
		}
	}
	if t.store != nil {
		t.store.EmitEvent(InputEvent{Type: typ, Sample: s})
	}
}

func (t *InputTracker) registered(id uint32) bool {
	for i := range t.handlers {
		if t.handlers[i].id == id {
			return true
		}
	}
	return false
}

// normalizePointer maps device pixels to [-0.5, 0.5] around the viewport
// center with Y pointing up.
func normalizePointer(x, y, w, h float64) Vec2 {
	var n Vec2
	if w > 0 {
		n.X = (x - w/2) / w
	}
	if h > 0 {
		n.Y = -(y - h/2) / h
	}
	return n
}
