package backdrop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Host defaults.
const (
	DefaultScrollRange   = 3000.0
	DefaultWheelStep     = 60.0
	DefaultScreenshotDir = "screenshots"
)

// RunConfig holds window and host options for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	ShowFPS       bool
	// ScrollRange is the scrollable distance in pixels mapped to progress
	// [0, 1]. Mouse wheel input is integrated into an offset within it.
	ScrollRange float64
	// WheelStep is the scroll distance in pixels per wheel notch.
	WheelStep float64
	// ClearColor fills the window behind the backdrop.
	ClearColor Color
	Debug      bool
	// TestScript, when non-empty, is a JSON script driving injected input
	// and screenshots. The game exits when the script is done.
	TestScript []byte
}

// Host is an ebiten.Game that wires device input, the frame queue, the loop
// and an EbitenSurface together. Use Run for the common case, or embed Host
// in your own game and forward Update, Draw and Layout.
type Host struct {
	Tracker *InputTracker
	Queue   *FrameQueue
	Surface *EbitenSurface
	Loop    *Loop

	ScrollRange   float64
	WheelStep     float64
	ScreenshotDir string

	width, height int
	ticks         uint64
	offset        float64
	pointerIn     bool
	lastX, lastY  int
	touchIDs      []ebiten.TouchID
	stop          func()

	screenshotQueue []string
	testRunner      *TestRunner
	fps             *fpsOverlay
}

// NewHost creates a host for a window of the given size.
func NewHost(width, height int, clear Color) *Host {
	h := &Host{
		Tracker:       NewInputTracker(float64(width), float64(height)),
		Queue:         &FrameQueue{},
		Surface:       NewEbitenSurface(clear),
		ScrollRange:   DefaultScrollRange,
		WheelStep:     DefaultWheelStep,
		ScreenshotDir: DefaultScreenshotDir,
		width:         width,
		height:        height,
	}
	h.Tracker.SetClock(h.now)
	h.Loop = NewLoop(h.Tracker, h.Queue, h.Surface)
	return h
}

// Start activates cfg on the host's loop, sized to the window.
func (h *Host) Start(cfg Config) error {
	cfg.ViewportWidth = float64(h.width)
	cfg.ViewportHeight = float64(h.height)
	stop, err := h.Loop.Start(cfg)
	if err != nil {
		return err
	}
	h.stop = stop
	return nil
}

// Stop tears down the active mode.
func (h *Host) Stop() {
	if h.stop != nil {
		h.stop()
		h.stop = nil
	}
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Update.
func (h *Host) SetTestRunner(r *TestRunner) {
	h.testRunner = r
}

// ShowFPS toggles the FPS overlay.
func (h *Host) ShowFPS(show bool) {
	if show && h.fps == nil {
		h.fps = newFPSOverlay()
	} else if !show {
		h.fps = nil
	}
}

// now is the host frame clock: one TPS interval per Update.
func (h *Host) now() time.Duration {
	return time.Duration(h.ticks) * time.Second / time.Duration(tps())
}

// tps returns the ebiten tick rate, or 60 when ticks follow the display.
func tps() int {
	if n := ebiten.TPS(); n > 0 {
		return n
	}
	return 60
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if err := h.advance(h.readDevice); err != nil {
		return err
	}
	if h.fps != nil {
		h.fps.update(1 / float64(tps()))
	}
	return nil
}

// advance runs one host frame: scripted steps, one input source and the
// queued frame callbacks. readInput is skipped on frames that consume an
// injected event.
func (h *Host) advance(readInput func()) error {
	if h.testRunner != nil {
		if h.testRunner.Done() && len(h.screenshotQueue) == 0 {
			return ebiten.Termination
		}
		h.testRunner.step(h)
	}
	if !h.Tracker.Poll() && readInput != nil {
		readInput()
	}
	h.Queue.Flush(h.now())
	h.ticks++
	return nil
}

// readDevice feeds real cursor, touch and wheel input into the tracker.
func (h *Host) readDevice() {
	x, y := ebiten.CursorPosition()
	h.touchIDs = ebiten.AppendTouchIDs(h.touchIDs[:0])
	if len(h.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(h.touchIDs[0])
	}
	inside := x >= 0 && y >= 0 && x < h.width && y < h.height
	switch {
	case inside && (!h.pointerIn || x != h.lastX || y != h.lastY):
		h.Tracker.PointerMove(float64(x), float64(y))
	case !inside && h.pointerIn:
		h.Tracker.PointerLeave()
	}
	h.pointerIn = inside
	h.lastX, h.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.scrollBy(-wy * h.WheelStep)
	}
}

// scrollBy moves the integrated scroll offset, clamped to the range.
func (h *Host) scrollBy(delta float64) {
	next := Clamp(h.offset+delta, 0, h.ScrollRange)
	if next == h.offset {
		return
	}
	h.offset = next
	h.Tracker.Scroll(h.offset, h.ScrollRange)
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.Surface.Draw(screen)
	if h.fps != nil {
		h.fps.draw(screen)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. A new outside size resizes the viewport.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != h.width || outsideHeight != h.height) {
		h.width, h.height = outsideWidth, outsideHeight
		h.Tracker.Resize(float64(outsideWidth), float64(outsideHeight))
	}
	return h.width, h.height
}

// Run opens a window and drives cfg until the window is closed.
func Run(cfg Config, rc RunConfig) error {
	if rc.Width <= 0 {
		rc.Width = int(cfg.ViewportWidth)
	}
	if rc.Height <= 0 {
		rc.Height = int(cfg.ViewportHeight)
	}
	h := NewHost(rc.Width, rc.Height, rc.ClearColor)
	if rc.ScrollRange > 0 {
		h.ScrollRange = rc.ScrollRange
	}
	if rc.WheelStep > 0 {
		h.WheelStep = rc.WheelStep
	}
	h.Loop.SetDebugMode(rc.Debug)
	h.ShowFPS(rc.ShowFPS)
	if len(rc.TestScript) > 0 {
		runner, err := LoadTestScript(rc.TestScript)
		if err != nil {
			return err
		}
		h.SetTestRunner(runner)
	}
	if err := h.Start(cfg); err != nil {
		return err
	}
	defer h.Stop()

	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(h)
}
