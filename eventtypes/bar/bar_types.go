// Package bar is the market data event variant. One Bar is one OHLCV record
// for one ticker at one timestamp.
package bar

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

// Bar is a single OHLCV candle for a ticker
type Bar struct {
	event.Base
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
	// ForwardFilled flags a bar whose prices were carried over from the last
	// known real bar for accounting purposes only
	ForwardFilled bool `json:"forward-filled"`
}

// Event interface for a market data bar
type Event interface {
	common.DataEvent
}
