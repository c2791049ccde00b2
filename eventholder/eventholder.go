package eventholder

import (
	"github.com/quantfoundry/backtester/common"
)

// Reset returns the holder to an empty state
func (h *Holder) Reset() {
	h.queue = nil
	h.seq = 0
}

// AppendEvent adds an event to the queue
func (h *Holder) AppendEvent(e common.Event) {
	if e == nil {
		return
	}
	h.queue = append(h.queue, entry{event: e, seq: h.seq})
	h.seq++
}

// Len returns the number of events awaiting processing
func (h *Holder) Len() int {
	return len(h.queue)
}

// NextEvent removes and returns the next event to process, or nil when the
// queue is empty. Selection is by earliest timestamp, then lowest kind rank,
// then insertion order
func (h *Holder) NextEvent() common.Event {
	if len(h.queue) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(h.queue); i++ {
		if before(&h.queue[i], &h.queue[best]) {
			best = i
		}
	}
	e := h.queue[best].event
	h.queue = append(h.queue[:best], h.queue[best+1:]...)
	return e
}

func before(a, b *entry) bool {
	at, bt := a.event.GetTime(), b.event.GetTime()
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	ak, bk := a.event.GetKind(), b.event.GetKind()
	if ak != bk {
		return ak < bk
	}
	return a.seq < b.seq
}
