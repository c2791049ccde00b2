package order

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// GetKind ranks orders after signals and before fills
func (o *Order) GetKind() common.Kind {
	return common.KindOrder
}

// IsOrder returns whether the event is an order
func (o *Order) IsOrder() bool {
	return true
}

// SetDirection sets the side of the order
func (o *Order) SetDirection(s common.Side) {
	o.Direction = s
}

// GetDirection returns the side of the order
func (o *Order) GetDirection() common.Side {
	return o.Direction
}

// SetAmount sets the amount of the order
func (o *Order) SetAmount(i decimal.Decimal) {
	o.Amount = i
}

// GetAmount returns the amount of the order
func (o *Order) GetAmount() decimal.Decimal {
	return o.Amount
}

// GetPrice returns the reference price the order was sized at
func (o *Order) GetPrice() decimal.Decimal {
	return o.Price
}

// SetID sets the order ID
func (o *Order) SetID(id string) {
	o.ID = id
}

// GetID returns the order ID
func (o *Order) GetID() string {
	return o.ID
}
