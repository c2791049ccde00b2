package portfolio

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/fill"
	"github.com/quantfoundry/backtester/eventtypes/order"
	"github.com/quantfoundry/backtester/eventtypes/signal"
	"github.com/quantfoundry/backtester/portfolio/compliance"
	"github.com/quantfoundry/backtester/portfolio/holdings"
	"github.com/quantfoundry/backtester/portfolio/size"
)

// Setup creates a portfolio manager instance and sets private fields
func Setup(sh size.Handler, maxStaleBars int, l *zap.SugaredLogger) (*Portfolio, error) {
	if sh == nil {
		return nil, errSizeManagerUnset
	}
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	return &Portfolio{
		sizeManager:  sh,
		maxStaleBars: maxStaleBars,
		positions:    make(map[string]*Position),
		marks:        make(map[string]decimal.Decimal),
		staleBars:    make(map[string]int),
		log:          l,
	}, nil
}

// Seed funds the portfolio with its initial cash and enters the Active state
func (p *Portfolio) Seed(initialCash decimal.Decimal) error {
	if p.state != Uninitialized {
		return errAlreadySeeded
	}
	if !initialCash.IsPositive() {
		return errInvalidSeed
	}
	p.initialCash = initialCash
	p.cash = initialCash
	p.state = Active
	return nil
}

// State returns the lifecycle stage of the portfolio
func (p *Portfolio) State() State {
	return p.state
}

// OnBar marks existing positions to the bar's close. It never changes cash
// or quantities. A forward-filled bar bumps the ticker's staleness counter;
// a real bar resets it
func (p *Portfolio) OnBar(ev common.DataEvent) error {
	if ev == nil {
		return common.ErrNilEvent
	}
	if p.state != Active {
		return errNotActive
	}
	if ev.IsForwardFilled() {
		p.staleBars[ev.GetTicker()]++
		if p.staleBars[ev.GetTicker()] == p.maxStaleBars+1 {
			p.log.Warnw("price data stale beyond tolerance, ticker untradeable",
				"ticker", ev.GetTicker(), "timestamp", ev.GetTime())
		}
		return nil
	}
	p.marks[ev.GetTicker()] = ev.GetClosePrice()
	p.staleBars[ev.GetTicker()] = 0
	return nil
}

// LastPrice returns the last known price for a ticker and whether one exists
func (p *Portfolio) LastPrice(ticker string) (decimal.Decimal, bool) {
	mark, ok := p.marks[ticker]
	return mark, ok
}

// IsTradeable returns whether a ticker's data is fresh enough to trade on
func (p *Portfolio) IsTradeable(ticker string) bool {
	if _, ok := p.marks[ticker]; !ok {
		return false
	}
	return p.staleBars[ticker] <= p.maxStaleBars
}

// Quantity returns the currently held quantity for a ticker
func (p *Portfolio) Quantity(ticker string) decimal.Decimal {
	if pos, ok := p.positions[ticker]; ok {
		return pos.Quantity
	}
	return decimal.Zero
}

// Equity returns cash plus the mark value of every position
func (p *Portfolio) Equity() decimal.Decimal {
	total := p.cash
	for _, pos := range p.positions {
		total = total.Add(pos.Quantity.Mul(p.marks[pos.Ticker]))
	}
	return total
}

// Cash returns the uncommitted funds
func (p *Portfolio) Cash() decimal.Decimal {
	return p.cash
}

// InitialCash returns the seed funds
func (p *Portfolio) InitialCash() decimal.Decimal {
	return p.initialCash
}

// OnSignal translates target weights into sized orders against current
// equity. Sell orders are returned before buy orders so sale proceeds can
// fund the purchases. Stale or never-priced tickers produce a rejected trade
// log entry instead of an order
func (p *Portfolio) OnSignal(ev signal.Event) ([]order.Event, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	if p.state != Active {
		return nil, errNotActive
	}
	equity := p.Equity()
	weights := ev.GetWeights()
	var sells, buys []order.Event
	for _, ticker := range ev.Tickers() {
		if !p.IsTradeable(ticker) {
			p.log.Warnw("cannot trade on stale data", "ticker", ticker, "timestamp", ev.GetTime())
			p.compliance.AddRecord(compliance.Record{
				Timestamp: ev.GetTime(),
				Ticker:    ticker,
				Direction: common.MissingData,
				Status:    common.Rejected,
				Reason:    "no fresh price data",
			})
			continue
		}
		mark := p.marks[ticker]
		o, err := p.sizeManager.SizeOrder(&size.Request{
			Ticker:          ticker,
			TargetWeight:    weights[ticker],
			Equity:          equity,
			CurrentQuantity: p.Quantity(ticker),
			Price:           mark,
		})
		if err != nil {
			return nil, err
		}
		if o == nil {
			continue
		}
		o.Time = ev.GetTime()
		o.Offset = ev.GetOffset()
		p.orderSeq++
		o.SetID(fmt.Sprintf("%06d", p.orderSeq))
		if o.GetDirection() == common.Sell {
			sells = append(sells, o)
		} else {
			buys = append(buys, o)
		}
	}
	return append(sells, buys...), nil
}

// OnFill applies a fill to cash and positions and appends it to the trade
// log. After every application the incremental cash and position delta is
// cross-checked against the recomputed total equity; any mismatch is an
// accounting violation and fatal, never silently clamped
func (p *Portfolio) OnFill(ev fill.Event) error {
	if ev == nil {
		return common.ErrNilEvent
	}
	if p.state != Active {
		return errNotActive
	}
	rec := compliance.Record{
		Timestamp: ev.GetTime(),
		Ticker:    ev.GetTicker(),
		OrderID:   ev.GetOrderID(),
		Direction: ev.GetDirection(),
		Status:    ev.GetStatus(),
		Amount:    ev.GetAmount(),
		Price:     ev.GetPurchasePrice(),
		Fee:       ev.GetFee(),
		Reason:    ev.GetReason(),
	}
	if ev.GetStatus() == common.Rejected || ev.GetAmount().IsZero() {
		p.compliance.AddRecord(rec)
		return nil
	}

	amount := ev.GetAmount()
	price := ev.GetPurchasePrice()
	fee := ev.GetFee()
	mark := p.marks[ev.GetTicker()]
	equityBefore := p.Equity()

	var expectedDelta decimal.Decimal
	switch ev.GetDirection() {
	case common.Buy:
		p.cash = p.cash.Sub(amount.Mul(price)).Sub(fee)
		rec.RealizedPnL = p.applyToPosition(ev.GetTicker(), amount, price)
		expectedDelta = amount.Mul(mark.Sub(price)).Sub(fee)
	case common.Sell:
		p.cash = p.cash.Add(amount.Mul(price)).Sub(fee)
		rec.RealizedPnL = p.applyToPosition(ev.GetTicker(), amount.Neg(), price)
		expectedDelta = amount.Mul(price.Sub(mark)).Sub(fee)
	default:
		return fmt.Errorf("%w: %v", errUnknownDirection, ev.GetDirection())
	}
	p.totalFees = p.totalFees.Add(fee)

	if p.cash.IsNegative() {
		return fmt.Errorf("%w: cash %v after %v of %v %v at %v",
			common.ErrAccountingViolation,
			p.cash,
			ev.GetDirection(),
			amount,
			ev.GetTicker(),
			price)
	}
	if diff := p.Equity().Sub(equityBefore); !diff.Equal(expectedDelta) {
		return fmt.Errorf("%w: equity moved %v, expected %v after fill of %v",
			common.ErrAccountingViolation,
			diff,
			expectedDelta,
			ev.GetTicker())
	}

	p.compliance.AddRecord(rec)
	return nil
}

// applyToPosition mutates the ticker's position by a signed quantity at a
// price, returning realized profit for any closed portion. A position whose
// quantity returns to zero is removed
func (p *Portfolio) applyToPosition(ticker string, delta, price decimal.Decimal) decimal.Decimal {
	pos, ok := p.positions[ticker]
	if !ok {
		p.positions[ticker] = &Position{Ticker: ticker, Quantity: delta, AverageCost: price}
		return decimal.Zero
	}

	realized := decimal.Zero
	sameSign := pos.Quantity.Sign() == delta.Sign()
	if sameSign {
		oldValue := pos.Quantity.Abs().Mul(pos.AverageCost)
		newValue := delta.Abs().Mul(price)
		newQty := pos.Quantity.Add(delta)
		pos.AverageCost = oldValue.Add(newValue).Div(newQty.Abs())
		pos.Quantity = newQty
		return realized
	}

	closed := decimal.Min(delta.Abs(), pos.Quantity.Abs())
	if pos.Quantity.IsPositive() {
		realized = closed.Mul(price.Sub(pos.AverageCost))
	} else {
		realized = closed.Mul(pos.AverageCost.Sub(price))
	}
	pos.Quantity = pos.Quantity.Add(delta)
	if pos.Quantity.IsZero() {
		delete(p.positions, ticker)
		return realized
	}
	if pos.Quantity.Sign() != delta.Sign() {
		// reduced but not closed, average cost unchanged
		return realized
	}
	// position flipped through zero, the remainder opens at the fill price
	pos.AverageCost = price
	return realized
}

// SnapshotEquity appends the portfolio's current value to the equity curve
func (p *Portfolio) SnapshotEquity(t time.Time, offset int64) error {
	if p.state != Active {
		return errNotActive
	}
	if len(p.equityCurve) > 0 && !p.equityCurve[len(p.equityCurve)-1].Timestamp.Before(t) {
		return fmt.Errorf("%w: %v", errOutOfOrderEquity, t)
	}
	positionsValue := decimal.Zero
	for _, pos := range p.positions {
		positionsValue = positionsValue.Add(pos.Quantity.Mul(p.marks[pos.Ticker]))
	}
	p.equityCurve = append(p.equityCurve, holdings.Holding{
		Offset:         offset,
		Timestamp:      t,
		Cash:           p.cash,
		PositionsValue: positionsValue,
		TotalValue:     p.cash.Add(positionsValue),
		TotalFees:      p.totalFees,
	})
	return nil
}

// Finalise moves the portfolio into its read-only end state
func (p *Portfolio) Finalise() error {
	if p.state != Active {
		return errNotActive
	}
	p.state = Finalized
	return nil
}

// EquityCurve returns the recorded equity curve. Only valid once finalized
func (p *Portfolio) EquityCurve() ([]holdings.Holding, error) {
	if p.state != Finalized {
		return nil, errNotFinalized
	}
	resp := make([]holdings.Holding, len(p.equityCurve))
	copy(resp, p.equityCurve)
	return resp, nil
}

// TradeLog returns the recorded trade log. Only valid once finalized
func (p *Portfolio) TradeLog() ([]compliance.Record, error) {
	if p.state != Finalized {
		return nil, errNotFinalized
	}
	return p.compliance.Records(), nil
}

// Positions returns a sorted copy of the open positions
func (p *Portfolio) Positions() []Position {
	resp := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		resp = append(resp, *pos)
	}
	sort.Slice(resp, func(i, j int) bool {
		return resp[i].Ticker < resp[j].Ticker
	})
	return resp
}
