// Package order is the event variant raised by the portfolio manager once a
// signal has been sized against current equity. Orders are always priced at
// the last price known at signal time, never a future price; the execution
// handler decides the actual fill price from the next bar.
package order

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

// Order contains all details for an order event
type Order struct {
	event.Base
	ID        string          `json:"id"`
	Direction common.Side     `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	// Price is the reference price the order was sized at, the close known
	// at signal time
	Price decimal.Decimal `json:"price"`
}

// Event inherits common event interfaces along with extra functions related
// to handling orders
type Event interface {
	common.Event
	common.Directioner
	SetAmount(decimal.Decimal)
	GetAmount() decimal.Decimal
	GetPrice() decimal.Decimal
	IsOrder() bool
	SetID(id string)
	GetID() string
}
