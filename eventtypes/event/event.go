// Package event provides the base type embedded by every event variant the
// backtester processes. Events are only ever consumed in non-decreasing
// timestamp order; same-timestamp events are ranked by kind, market data
// first, so no component can act on information before it exists.
package event

import (
	"time"
)

// Base holds the fields common to market, signal, order and fill events
type Base struct {
	Offset int64     `json:"offset"`
	Ticker string    `json:"ticker"`
	Time   time.Time `json:"timestamp"`
	Reason string    `json:"reason"`
}

// GetOffset returns the offset of the event within the loaded data stream
func (b *Base) GetOffset() int64 {
	return b.Offset
}

// SetOffset sets the offset of the event within the loaded data stream
func (b *Base) SetOffset(o int64) {
	b.Offset = o
}

// IsEvent returns whether the event is an event
func (b *Base) IsEvent() bool {
	return true
}

// GetTime returns the time of the event
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetTicker returns the ticker the event concerns
func (b *Base) GetTicker() string {
	return b.Ticker
}

// GetReason returns any reason that has been attached to the event
func (b *Base) GetReason() string {
	return b.Reason
}

// AppendReason adds an additional reason to the event, useful for
// understanding decisions made in the trade log
func (b *Base) AppendReason(y string) {
	if b.Reason == "" {
		b.Reason = y
		return
	}
	b.Reason = y + ". " + b.Reason
}
