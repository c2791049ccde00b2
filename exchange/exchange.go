package exchange

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/config"
	"github.com/quantfoundry/backtester/eventtypes/event"
	"github.com/quantfoundry/backtester/eventtypes/fill"
	"github.com/quantfoundry/backtester/eventtypes/order"
	"github.com/quantfoundry/backtester/exchange/slippage"
)

var (
	four        = decimal.NewFromInt(4)
	tenThousand = decimal.NewFromInt(10000)
)

// Setup creates an execution handler with the supplied settings
func Setup(cfg Settings, l *zap.SugaredLogger) *Exchange {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Exchange{cfg: cfg, log: l}
}

// ExecuteOrder simulates what would happen to an order placed at the close of
// one bar: it fills at the following bar's open adjusted by the price model.
// Constraint breaches come back as rejected or partially filled fills, never
// as errors; an error return means the run itself is broken
func (e *Exchange) ExecuteOrder(o order.Event, nextBar common.DataEvent, availableCash decimal.Decimal) (*fill.Fill, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if nextBar == nil {
		return e.reject(o, o.GetPrice(), "no next bar to execute against"), nil
	}
	price, err := e.fillPrice(o.GetDirection(), nextBar)
	if err != nil {
		return nil, err
	}

	amount := o.GetAmount()
	status := common.Filled
	var constraint string

	if e.cfg.MaxParticipation.IsPositive() && nextBar.GetVolume().IsPositive() {
		participationCap := e.cfg.MaxParticipation.Mul(nextBar.GetVolume())
		if amount.GreaterThan(participationCap) {
			if e.cfg.ParticipationPolicy == config.PolicyReject {
				return e.reject(o, price, "order exceeds max participation of bar volume"), nil
			}
			amount = participationCap
			status = common.PartiallyFilled
			constraint = "amount capped at max participation of bar volume"
		}
	}

	bpsMultiplier := decimal.NewFromInt(1).Add(e.cfg.FeeBps.Div(tenThousand))
	if o.GetDirection() == common.Buy {
		cost := amount.Mul(price).Mul(bpsMultiplier).Add(e.cfg.FeeFixed)
		if cost.GreaterThan(availableCash) {
			if e.cfg.CashPolicy == config.PolicyReject {
				return e.reject(o, price, "insufficient cash"), nil
			}
			// truncated below division precision so the recomputed cost can
			// never exceed available cash
			affordable := availableCash.Sub(e.cfg.FeeFixed).
				Div(price.Mul(bpsMultiplier)).
				Truncate(8)
			if !affordable.IsPositive() {
				return e.reject(o, price, "insufficient cash"), nil
			}
			amount = affordable
			status = common.PartiallyFilled
			constraint = "buy scaled down to available cash"
		}
	}

	notional := amount.Mul(price)
	fee := e.cfg.FeeFixed.Add(notional.Mul(e.cfg.FeeBps).Div(tenThousand))
	total := notional.Add(fee)
	if o.GetDirection() == common.Sell {
		total = notional.Sub(fee)
	}

	f := &fill.Fill{
		Base: event.Base{
			Offset: o.GetOffset(),
			Ticker: o.GetTicker(),
			Time:   nextBar.GetTime(),
			Reason: o.GetReason(),
		},
		OrderID:        o.GetID(),
		Direction:      o.GetDirection(),
		Status:         status,
		Amount:         amount,
		ReferencePrice: o.GetPrice(),
		PurchasePrice:  price,
		Fee:            fee,
		Slippage:       price.Sub(nextBar.GetOpenPrice()),
		Total:          total,
	}
	if constraint != "" {
		f.AppendReason(constraint)
		e.log.Debugw("execution constraint applied",
			"ticker", o.GetTicker(),
			"order", o.GetID(),
			"constraint", constraint)
	}
	return f, nil
}

// reject produces a zero-amount fill tagged with why the order could not be
// executed
func (e *Exchange) reject(o order.Event, price decimal.Decimal, reason string) *fill.Fill {
	direction := o.GetDirection()
	switch direction {
	case common.Buy:
		direction = common.CouldNotBuy
	case common.Sell:
		direction = common.CouldNotSell
	}
	f := &fill.Fill{
		Base: event.Base{
			Offset: o.GetOffset(),
			Ticker: o.GetTicker(),
			Time:   o.GetTime(),
			Reason: o.GetReason(),
		},
		OrderID:        o.GetID(),
		Direction:      direction,
		Status:         common.Rejected,
		ReferencePrice: o.GetPrice(),
		PurchasePrice:  price,
	}
	f.AppendReason(reason)
	e.log.Debugw("order rejected",
		"ticker", o.GetTicker(),
		"order", o.GetID(),
		"reason", reason)
	return f
}

// fillPrice derives the execution price from the bar following the order
func (e *Exchange) fillPrice(direction common.Side, b common.DataEvent) (decimal.Decimal, error) {
	var price decimal.Decimal
	switch e.cfg.Model {
	case config.FillModelNextOpen, "":
		price = b.GetOpenPrice()
	case config.FillModelNextOpenSlippage:
		price = slippage.Apply(b.GetOpenPrice(), e.cfg.SlippagePercent, direction)
	case config.FillModelVWAP:
		price = b.GetOpenPrice().
			Add(b.GetHighPrice()).
			Add(b.GetLowPrice()).
			Add(b.GetClosePrice()).
			Div(four)
	default:
		return decimal.Zero, fmt.Errorf("%w: %v", errUnknownFillModel, e.cfg.Model)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %v at %v", errZeroFillPrice, b.GetTicker(), b.GetTime())
	}
	return price, nil
}
