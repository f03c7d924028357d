package backdrop

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// resizer is implemented by modes that regenerate their geometry when the
// viewport changes.
type resizer interface {
	Resize(width, height float64)
}

// Loop drives exactly one active Mode once per display refresh: it reads the
// latest input sample, ticks the mode and presents the frame to the surface.
//
// Loop is single-threaded. Start, Stop and the frame callbacks must all run
// on the goroutine that flushes the scheduler.
type Loop struct {
	tracker   *InputTracker
	scheduler FrameScheduler
	surface   Surface

	mode     Mode
	cfg      Config
	active   bool
	gen      uint64
	frameID  FrameID
	tickFn   FrameFunc
	handle   CallbackHandle
	viewport Vec2
	lastSeq  uint64

	started bool
	startAt time.Duration
	lastAt  time.Duration
	fade    *gween.Tween
	alpha   float64
	ticks   uint64

	debug bool
}

// NewLoop creates a stopped loop reading from tracker, scheduled by
// scheduler and presenting to surface. A nil collaborator leaves the loop
// inert: Start succeeds but nothing is ever drawn.
func NewLoop(tracker *InputTracker, scheduler FrameScheduler, surface Surface) *Loop {
	return &Loop{tracker: tracker, scheduler: scheduler, surface: surface}
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick timing
// and geometry counts are logged to stderr, along with inert-start warnings.
func (l *Loop) SetDebugMode(enabled bool) {
	l.debug = enabled
}

// Start validates cfg, activates the built-in mode for cfg.Mode and schedules
// the first tick. Any running activation is stopped first. The returned stop
// function tears down this activation only and is safe to call repeatedly.
func (l *Loop) Start(cfg Config) (stop func(), err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return l.StartMode(NewMode(cfg.Mode), cfg)
}

// StartMode is Start with a caller-built mode. m must be idle. The running
// activation is only stopped once m has activated; if Activate fails the
// previous mode keeps running.
func (l *Loop) StartMode(m Mode, cfg Config) (stop func(), err error) {
	if m == nil {
		return nil, &ConfigError{Field: "mode", Value: cfg.Mode.String(), Reason: "unknown mode"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l.active && m == l.mode {
		return nil, &ConfigError{Field: "mode", Value: m.Kind().String(), Reason: "mode already running"}
	}

	if l.tracker == nil || l.scheduler == nil || l.surface == nil {
		if l.debug {
			debugWarn("no input, scheduler or surface; %s stays inert", m.Kind())
		}
		return func() {}, nil
	}

	if err := m.Activate(cfg); err != nil {
		return nil, err
	}
	l.Stop()

	l.mode = m
	l.cfg = cfg
	l.active = true
	l.gen++
	gen := l.gen
	l.started = false
	l.ticks = 0
	l.viewport = l.tracker.Latest().Viewport
	l.lastSeq = l.tracker.Latest().Seq
	l.alpha = 1
	l.fade = nil
	if cfg.FadeIn > 0 {
		l.alpha = 0
		l.fade = gween.New(0, 1, float32(cfg.FadeIn), ease.Linear)
	}

	l.handle = l.tracker.OnSample(l.onSample)
	l.tickFn = func(now time.Duration) { l.tick(gen, now) }
	l.frameID = l.scheduler.RequestFrame(l.tickFn)

	return func() { l.stopGen(gen) }, nil
}

// Stop tears down the active mode: the pending tick is cancelled, the input
// subscription removed and the mode disposed. No tick runs after Stop
// returns. Stop is idempotent.
func (l *Loop) Stop() {
	if !l.active {
		return
	}
	l.active = false
	l.gen++
	if l.frameID != 0 {
		l.scheduler.CancelFrame(l.frameID)
		l.frameID = 0
	}
	l.handle.Remove()
	l.handle = CallbackHandle{}
	l.tickFn = nil
	l.mode.Dispose()
	l.mode = nil
}

// stopGen stops the loop only if activation gen is still the running one.
func (l *Loop) stopGen(gen uint64) {
	if l.active && l.gen == gen {
		l.Stop()
	}
}

// Active reports whether a mode is running.
func (l *Loop) Active() bool {
	return l.active
}

// Mode returns the active mode, or nil when stopped.
func (l *Loop) Mode() Mode {
	return l.mode
}

// Ticks returns the number of ticks run by the current activation.
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Alpha returns the current fade-in opacity.
func (l *Loop) Alpha() float64 {
	return l.alpha
}

// onSample regenerates resizable geometry when the viewport changes.
func (l *Loop) onSample(s Sample) {
	if !l.active || s.Viewport == l.viewport {
		return
	}
	l.viewport = s.Viewport
	if r, ok := l.mode.(resizer); ok {
		r.Resize(s.Viewport.X, s.Viewport.Y)
	}
}

func (l *Loop) tick(gen uint64, now time.Duration) {
	if !l.active || gen != l.gen {
		return
	}
	l.frameID = 0

	var delta time.Duration
	if !l.started {
		l.started = true
		l.startAt = now
	} else {
		delta = now - l.lastAt
	}
	l.lastAt = now

	var t0 time.Time
	if l.debug {
		t0 = time.Now()
	}

	frame := l.mode.Tick(l.sample(), Clock{Elapsed: now - l.startAt, Delta: delta})
	l.ticks++
	if frame != nil {
		frame.Alpha = l.updateFade(delta)
		l.surface.Present(frame)
	}

	if l.debug {
		l.debugLog(frame, time.Since(t0))
	}

	// The surface may have stopped the loop from inside Present.
	if !l.active || gen != l.gen {
		return
	}
	l.frameID = l.scheduler.RequestFrame(l.tickFn)
}

// sample returns the latest input sample. Scroll velocity is a per-step
// quantity: it is delivered to the first tick after the scroll and reads as
// zero on later ticks until a new sample arrives.
func (l *Loop) sample() Sample {
	s := l.tracker.Latest()
	if s.Seq == l.lastSeq {
		s.ScrollVelocity = 0
	}
	l.lastSeq = s.Seq
	return s
}

// updateFade advances the mount fade-in and returns the frame alpha.
func (l *Loop) updateFade(delta time.Duration) float64 {
	if l.fade == nil {
		return l.alpha
	}
	val, done := l.fade.Update(float32(delta.Seconds()))
	l.alpha = Clamp(float64(val), 0, 1)
	if done {
		l.alpha = 1
		l.fade = nil
	}
	return l.alpha
}
