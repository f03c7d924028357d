package backdrop

import "time"

// FrameFunc is a display-refresh callback. now is the host's frame clock.
type FrameFunc func(now time.Duration)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameScheduler runs callbacks once on the next display refresh.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

type queuedFrame struct {
	id FrameID
	fn FrameFunc
}

// FrameQueue is a FrameScheduler flushed by the host once per display
// refresh. Callbacks requested during a flush run on the following one.
type FrameQueue struct {
	pending []queuedFrame
	running []queuedFrame
	nextID  FrameID
}

// RequestFrame schedules fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameID {
	q.nextID++
	q.pending = append(q.pending, queuedFrame{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame removes a scheduled callback. Cancelling an unknown or already
// run callback is a no-op. A callback cancelled by an earlier callback of the
// same flush does not run.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = queuedFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Len returns the number of callbacks waiting for the next Flush.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// Flush runs every callback requested before this call, in request order,
// and returns how many ran.
func (q *FrameQueue) Flush(now time.Duration) int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(now)
		ran++
	}
	clear(q.running)
	q.running = q.running[:0]
	return ran
}
