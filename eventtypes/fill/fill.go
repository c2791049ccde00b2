package fill

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// GetKind ranks fills last among same-timestamp events
func (f *Fill) GetKind() common.Kind {
	return common.KindFill
}

// IsFill returns whether the event is a fill
func (f *Fill) IsFill() bool {
	return true
}

// SetDirection sets the side of the fill
func (f *Fill) SetDirection(s common.Side) {
	f.Direction = s
}

// GetDirection returns the side of the fill
func (f *Fill) GetDirection() common.Side {
	return f.Direction
}

// SetAmount sets the filled amount
func (f *Fill) SetAmount(i decimal.Decimal) {
	f.Amount = i
}

// GetAmount returns the filled amount
func (f *Fill) GetAmount() decimal.Decimal {
	return f.Amount
}

// GetReferencePrice returns the price the order was sized against
func (f *Fill) GetReferencePrice() decimal.Decimal {
	return f.ReferencePrice
}

// GetPurchasePrice returns the price actually obtained
func (f *Fill) GetPurchasePrice() decimal.Decimal {
	return f.PurchasePrice
}

// GetFee returns the transaction cost charged at fill time
func (f *Fill) GetFee() decimal.Decimal {
	return f.Fee
}

// SetFee sets the transaction cost charged at fill time
func (f *Fill) SetFee(d decimal.Decimal) {
	f.Fee = d
}

// GetTotal returns the total cash impact of the fill including fees
func (f *Fill) GetTotal() decimal.Decimal {
	return f.Total
}

// GetStatus returns the outcome tag of the fill
func (f *Fill) GetStatus() common.Status {
	return f.Status
}

// GetOrderID returns the ID of the order that raised the fill
func (f *Fill) GetOrderID() string {
	return f.OrderID
}
