// Package size converts a target portfolio weight into a signed order
// quantity. Sizing always uses the last price known at signal time, never a
// future price.
package size

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/eventtypes/order"
)

var (
	// ErrZeroPrice occurs when an order cannot be sized because no price is
	// known for the ticker
	ErrZeroPrice      = errors.New("cannot size order with a zero price")
	errNegativeEquity = errors.New("cannot size order against non-positive equity")
)

// Size sizes orders against current equity
type Size struct {
	// MinTradeValue suppresses orders whose notional delta is below this
	MinTradeValue decimal.Decimal
	AllowShorting bool
}

// Handler is the interface the portfolio uses for sizing
type Handler interface {
	SizeOrder(req *Request) (*order.Order, error)
}

// Request holds everything needed to size one ticker's rebalance
type Request struct {
	Ticker          string
	TargetWeight    decimal.Decimal
	Equity          decimal.Decimal
	CurrentQuantity decimal.Decimal
	Price           decimal.Decimal
}
