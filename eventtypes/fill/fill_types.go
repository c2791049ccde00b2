// Package fill is the event variant detailing the realised outcome of an
// order: the price actually obtained at the next bar's open, the fee charged
// and the outcome tag when execution constraints shrank or rejected it.
package fill

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

// Fill is an event that details the outcome from placing an order
type Fill struct {
	event.Base
	OrderID   string          `json:"order-id"`
	Direction common.Side     `json:"direction"`
	Status    common.Status   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	// ReferencePrice is the close the order was sized against at signal time
	ReferencePrice decimal.Decimal `json:"reference-price"`
	// PurchasePrice is the price actually obtained, the next bar's open
	// adjusted by the configured fill price model
	PurchasePrice decimal.Decimal `json:"purchase-price"`
	Fee           decimal.Decimal `json:"fee"`
	Slippage      decimal.Decimal `json:"slippage"`
	Total         decimal.Decimal `json:"total"`
}

// Event holds all functions required to handle a fill event
type Event interface {
	common.Event
	common.Directioner
	SetAmount(decimal.Decimal)
	GetAmount() decimal.Decimal
	GetReferencePrice() decimal.Decimal
	GetPurchasePrice() decimal.Decimal
	GetFee() decimal.Decimal
	SetFee(decimal.Decimal)
	GetTotal() decimal.Decimal
	GetStatus() common.Status
	GetOrderID() string
	IsFill() bool
}
