// Package signal is the strategy output event variant. A signal maps tickers
// to desired target portfolio weights; an empty mapping means no change this
// step and a weight of zero means flatten the position.
package signal

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

// Signal contains target portfolio weights keyed by ticker
type Signal struct {
	event.Base
	Weights map[string]decimal.Decimal `json:"weights"`
}

// Event handler is used for getting trade signal details
type Event interface {
	common.Event
	GetWeights() map[string]decimal.Decimal
	Tickers() []string
	IsSignal() bool
}
