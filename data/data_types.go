// Package data handles the loading and streaming of market data to the
// backtester. All data is loaded and sorted before the simulation loop
// starts; nothing in the loop blocks on I/O, which is what allows runs over
// identical inputs to be byte-identical.
package data

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

var (
	// ErrHandlerNotFound returned when a handler is not found for a ticker
	ErrHandlerNotFound = errors.New("data handler not found")
	// ErrEmptyStream returned when a loader produced no data
	ErrEmptyStream = errors.New("empty data stream")
)

// Base is the base implementation of the Handler interface, embedded by
// specific loaders such as the bars implementation
type Base struct {
	latest common.DataEvent
	stream []common.DataEvent
	offset int64
}

// Handler interface for loading and streaming data
type Handler interface {
	Loader
	Streamer
	Reset()
}

// Loader interface for loading data into a backtest supported format
type Loader interface {
	Load() error
	AppendStream(s ...common.DataEvent)
}

// Streamer interface handles distributing loaded data as events
type Streamer interface {
	Next() common.DataEvent
	Peek() common.DataEvent
	GetStream() []common.DataEvent
	History() []common.DataEvent
	Latest() common.DataEvent
	Offset() int64
	IsLastEvent() bool

	StreamOpen() []decimal.Decimal
	StreamClose() []decimal.Decimal
	StreamVol() []decimal.Decimal

	HasDataAtTime(time.Time) bool
	PeekTime() (time.Time, bool)
}

// HandlerPerTicker stores a data handler for every ticker in the universe
type HandlerPerTicker struct {
	data map[string]Handler
}

// Holder interface dictates what a data holder is expected to do
type Holder interface {
	SetDataForTicker(string, Handler)
	GetDataForTicker(string) (Handler, error)
	Tickers() []string
	Reset()
}
