package backdrop

// syntheticEvent represents a single injected input event. Injected events
// go through the same tracker methods as real input.
type syntheticEvent struct {
	typ          EventType
	x, y         float64
	offset, span float64
}

// InjectPointer queues a pointer move to (x, y) in device pixels. The event
// is consumed on the next Poll.
func (t *InputTracker) InjectPointer(x, y float64) {
	t.injectQueue = append(t.injectQueue, syntheticEvent{typ: EventPointerMove, x: x, y: y})
}

// InjectLeave queues the loss of the pointer signal.
func (t *InputTracker) InjectLeave() {
	t.injectQueue = append(t.injectQueue, syntheticEvent{typ: EventPointerLeave})
}

// InjectScroll queues a scroll to offset within a range of scrollRange pixels.
func (t *InputTracker) InjectScroll(offset, scrollRange float64) {
	t.injectQueue = append(t.injectQueue, syntheticEvent{typ: EventScroll, offset: offset, span: scrollRange})
}

// InjectPointerPath queues pointer moves linearly interpolated from
// (fromX, fromY) to (toX, toY), one per frame. The sequence consumes `frames`
// frames and always ends exactly at (toX, toY). Minimum frames is 1.
func (t *InputTracker) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	if frames == 1 {
		t.InjectPointer(toX, toY)
		return
	}
	for i := 0; i < frames; i++ {
		k := float64(i) / float64(frames-1)
		t.InjectPointer(Lerp(fromX, toX, k), Lerp(fromY, toY, k))
	}
}

// Pending returns the number of queued synthetic events.
func (t *InputTracker) Pending() int {
	return len(t.injectQueue)
}

// Poll pops one queued synthetic event and applies it. Returns true if an
// event was consumed; hosts skip real device input for that frame.
func (t *InputTracker) Poll() bool {
	if len(t.injectQueue) == 0 {
		return false
	}
	evt := t.injectQueue[0]
	copy(t.injectQueue, t.injectQueue[1:])
	t.injectQueue = t.injectQueue[:len(t.injectQueue)-1]

	switch evt.typ {
	case EventPointerMove:
		t.PointerMove(evt.x, evt.y)
	case EventPointerLeave:
		t.PointerLeave()
	case EventScroll:
		t.Scroll(evt.offset, evt.span)
	}
	return true
}
