package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// Reset loaded data to a blank state
func (b *Base) Reset() {
	b.latest = nil
	b.offset = 0
	b.stream = nil
}

// GetStream will return the entire data list
func (b *Base) GetStream() []common.DataEvent {
	return b.stream
}

// Offset returns the current iteration of the stream
func (b *Base) Offset() int64 {
	return b.offset
}

// SetStream sets the data stream
func (b *Base) SetStream(s []common.DataEvent) {
	b.stream = s
}

// AppendStream appends new data onto the stream, ignoring nils
func (b *Base) AppendStream(s ...common.DataEvent) {
	for i := range s {
		if s[i] == nil {
			continue
		}
		b.stream = append(b.stream, s[i])
	}
}

// Next returns the next event in the stream and shifts the offset along one,
// or nil when the stream is exhausted
func (b *Base) Next() common.DataEvent {
	if int64(len(b.stream)) <= b.offset {
		return nil
	}
	ret := b.stream[b.offset]
	b.offset++
	b.latest = ret
	return ret
}

// Peek returns the next unstreamed event without consuming it, or nil when
// the stream is exhausted. The execution handler uses this to price fills at
// the following bar
func (b *Base) Peek() common.DataEvent {
	if int64(len(b.stream)) <= b.offset {
		return nil
	}
	return b.stream[b.offset]
}

// History returns all data events up to and including the current offset.
// This is the only view of the stream a strategy is ever handed
func (b *Base) History() []common.DataEvent {
	return b.stream[:b.offset]
}

// Latest returns the most recently streamed data event
func (b *Base) Latest() common.DataEvent {
	return b.latest
}

// IsLastEvent returns whether the current offset is the final event
func (b *Base) IsLastEvent() bool {
	return b.latest != nil && b.offset == int64(len(b.stream))
}

// HasDataAtTime returns whether the unstreamed portion of data contains an
// event at the exact provided time
func (b *Base) HasDataAtTime(t time.Time) bool {
	for i := b.offset; i < int64(len(b.stream)); i++ {
		if b.stream[i].GetTime().Equal(t) {
			return true
		}
	}
	return false
}

// PeekTime returns the timestamp of the next unstreamed event without
// consuming it
func (b *Base) PeekTime() (time.Time, bool) {
	if int64(len(b.stream)) <= b.offset {
		return time.Time{}, false
	}
	return b.stream[b.offset].GetTime(), true
}

// StreamOpen returns all open prices for the streamed portion of data
func (b *Base) StreamOpen() []decimal.Decimal {
	ret := make([]decimal.Decimal, b.offset)
	for i := int64(0); i < b.offset; i++ {
		ret[i] = b.stream[i].GetOpenPrice()
	}
	return ret
}

// StreamClose returns all close prices for the streamed portion of data
func (b *Base) StreamClose() []decimal.Decimal {
	ret := make([]decimal.Decimal, b.offset)
	for i := int64(0); i < b.offset; i++ {
		ret[i] = b.stream[i].GetClosePrice()
	}
	return ret
}

// StreamVol returns all volumes for the streamed portion of data
func (b *Base) StreamVol() []decimal.Decimal {
	ret := make([]decimal.Decimal, b.offset)
	for i := int64(0); i < b.offset; i++ {
		ret[i] = b.stream[i].GetVolume()
	}
	return ret
}

// SortStream sorts the stream by timestamp
func (b *Base) SortStream() {
	sort.SliceStable(b.stream, func(i, j int) bool {
		return b.stream[i].GetTime().Before(b.stream[j].GetTime())
	})
}

// SetDataForTicker assigns a data handler to the holder for a ticker
func (h *HandlerPerTicker) SetDataForTicker(ticker string, d Handler) {
	if h.data == nil {
		h.data = make(map[string]Handler)
	}
	h.data[ticker] = d
}

// GetDataForTicker returns the handler for a ticker
func (h *HandlerPerTicker) GetDataForTicker(ticker string) (Handler, error) {
	d, ok := h.data[ticker]
	if !ok {
		return nil, fmt.Errorf("%w for %v", ErrHandlerNotFound, ticker)
	}
	return d, nil
}

// Tickers returns every held ticker in lexical order
func (h *HandlerPerTicker) Tickers() []string {
	tickers := make([]string, 0, len(h.data))
	for t := range h.data {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Reset returns the holder to defaults
func (h *HandlerPerTicker) Reset() {
	h.data = nil
}
