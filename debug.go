package backdrop

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing and geometry counts.
// Only populated when Loop.debug is true.
type debugStats struct {
	tickTime   time.Duration
	mode       ModeKind
	seq        uint64
	pathCount  int
	pointCount int
	alpha      float64
}

// frameStats collects the geometry counts of a frame. A nil frame yields zero
// counts.
func frameStats(f *Frame) debugStats {
	if f == nil {
		return debugStats{}
	}
	st := debugStats{mode: f.Mode, seq: f.Seq, alpha: f.Alpha}
	switch f.Kind {
	case FramePaths:
		st.pathCount = len(f.Paths)
		for i := range f.Paths {
			st.pointCount += len(f.Paths[i].Points)
		}
	case FramePoints:
		if f.Points != nil {
			st.pointCount = f.Points.Count()
		}
	}
	return st
}

// debugLog prints tick timing and frame stats to stderr.
func (l *Loop) debugLog(f *Frame, elapsed time.Duration) {
	if !l.debug {
		return
	}
	if f == nil {
		debugWarn("tick %d produced no frame", l.ticks)
		return
	}
	st := frameStats(f)
	st.tickTime = elapsed
	_, _ = fmt.Fprintf(os.Stderr,
		"[backdrop] %s tick %d: %v | paths: %d | points: %d | alpha: %.2f\n",
		st.mode, st.seq, st.tickTime, st.pathCount, st.pointCount, st.alpha)
}

// debugWarn prints a warning line to stderr.
func debugWarn(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[backdrop] warning: "+format+"\n", args...)
}
