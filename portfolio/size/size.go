package size

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/order"
)

// SizeOrder computes the delta between the desired position value,
// targetWeight x equity, and the current position value, and converts it to
// an order amount at the provided price. A nil order with no error means the
// delta was below the minimum trade threshold and nothing should be done
func (s *Size) SizeOrder(req *Request) (*order.Order, error) {
	if req == nil {
		return nil, common.ErrNilArguments
	}
	if req.Price.IsZero() {
		return nil, fmt.Errorf("%w for %v", ErrZeroPrice, req.Ticker)
	}
	if !req.Equity.IsPositive() {
		return nil, fmt.Errorf("%w for %v", errNegativeEquity, req.Ticker)
	}

	desiredValue := req.TargetWeight.Mul(req.Equity)
	if desiredValue.IsNegative() && !s.AllowShorting {
		// a negative weight with shorting disabled means flatten
		desiredValue = decimal.Zero
	}
	currentValue := req.CurrentQuantity.Mul(req.Price)
	deltaValue := desiredValue.Sub(currentValue)
	if deltaValue.Abs().LessThan(s.MinTradeValue) {
		return nil, nil
	}

	o := &order.Order{
		Price:  req.Price,
		Amount: deltaValue.Abs().Div(req.Price),
	}
	o.Ticker = req.Ticker
	if deltaValue.IsPositive() {
		o.Direction = common.Buy
	} else {
		o.Direction = common.Sell
		if !s.AllowShorting && o.Amount.GreaterThan(req.CurrentQuantity) {
			o.Amount = req.CurrentQuantity
			o.AppendReason("sell clamped to held quantity")
		}
	}
	if o.Amount.IsZero() {
		return nil, nil
	}
	return o, nil
}
