package portfolio

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
	"github.com/quantfoundry/backtester/eventtypes/fill"
	"github.com/quantfoundry/backtester/eventtypes/signal"
	"github.com/quantfoundry/backtester/portfolio/size"
)

var tn = time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

func testPortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p, err := Setup(&size.Size{}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Seed(decimal.NewFromInt(100000)); err != nil {
		t.Fatal(err)
	}
	return p
}

func testMarketBar(ticker string, t time.Time, price int64) *bar.Bar {
	d := decimal.NewFromInt(price)
	return &bar.Bar{
		Base:   event.Base{Ticker: ticker, Time: t},
		Open:   d,
		High:   d,
		Low:    d,
		Close:  d,
		Volume: decimal.NewFromInt(100000),
	}
}

func TestSetup(t *testing.T) {
	t.Parallel()
	_, err := Setup(nil, 0, nil)
	if !errors.Is(err, errSizeManagerUnset) {
		t.Errorf("received: %v, expected: %v", err, errSizeManagerUnset)
	}
}

func TestStateMachine(t *testing.T) {
	t.Parallel()
	p, err := Setup(&size.Size{}, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.State() != Uninitialized {
		t.Errorf("received: %v, expected: %v", p.State(), Uninitialized)
	}
	if err = p.Seed(decimal.Zero); !errors.Is(err, errInvalidSeed) {
		t.Errorf("received: %v, expected: %v", err, errInvalidSeed)
	}
	if err = p.Seed(decimal.NewFromInt(1000)); err != nil {
		t.Error(err)
	}
	if p.State() != Active {
		t.Errorf("received: %v, expected: %v", p.State(), Active)
	}
	if err = p.Seed(decimal.NewFromInt(1000)); !errors.Is(err, errAlreadySeeded) {
		t.Errorf("received: %v, expected: %v", err, errAlreadySeeded)
	}
	if _, err = p.EquityCurve(); !errors.Is(err, errNotFinalized) {
		t.Errorf("received: %v, expected: %v", err, errNotFinalized)
	}
	if err = p.Finalise(); err != nil {
		t.Error(err)
	}
	if err = p.Finalise(); !errors.Is(err, errNotActive) {
		t.Errorf("received: %v, expected: %v", err, errNotActive)
	}
	if err = p.SnapshotEquity(tn, 0); !errors.Is(err, errNotActive) {
		t.Errorf("received: %v, expected: %v", err, errNotActive)
	}
}

func TestOnBarMarksPositions(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	if !p.Equity().Equal(decimal.NewFromInt(100000)) {
		t.Errorf("received: %v, expected: %v", p.Equity(), 100000)
	}
	mark, ok := p.LastPrice("AAPL")
	if !ok || !mark.Equal(decimal.NewFromInt(100)) {
		t.Errorf("received: %v, expected: %v", mark, 100)
	}
	if !p.IsTradeable("AAPL") {
		t.Error("expected AAPL to be tradeable")
	}
	if p.IsTradeable("MSFT") {
		t.Error("expected MSFT to be untradeable with no data")
	}
}

func TestStalenessThreshold(t *testing.T) {
	t.Parallel()
	p, err := Setup(&size.Size{}, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = p.Seed(decimal.NewFromInt(1000)); err != nil {
		t.Fatal(err)
	}
	if err = p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 2; i++ {
		ff := testMarketBar("AAPL", tn.AddDate(0, 0, i), 100)
		ff.ForwardFilled = true
		if err = p.OnBar(ff); err != nil {
			t.Fatal(err)
		}
		if !p.IsTradeable("AAPL") {
			t.Errorf("expected tradeable after %v stale bars", i)
		}
	}
	ff := testMarketBar("AAPL", tn.AddDate(0, 0, 3), 100)
	ff.ForwardFilled = true
	if err = p.OnBar(ff); err != nil {
		t.Fatal(err)
	}
	if p.IsTradeable("AAPL") {
		t.Error("expected untradeable beyond staleness threshold")
	}
}

func TestOnSignalSellsBeforeBuys(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	if err := p.OnBar(testMarketBar("MSFT", tn, 50)); err != nil {
		t.Fatal(err)
	}
	// open an AAPL position to later rotate out of
	buy := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn},
		Direction:     common.Buy,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(500),
		PurchasePrice: decimal.NewFromInt(100),
	}
	if err := p.OnFill(buy); err != nil {
		t.Fatal(err)
	}

	sig := &signal.Signal{
		Base: event.Base{Time: tn.AddDate(0, 0, 1)},
		Weights: map[string]decimal.Decimal{
			"MSFT": decimal.NewFromFloat(0.5),
			"AAPL": decimal.Zero,
		},
	}
	orders, err := p.OnSignal(sig)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("received: %v orders, expected: %v", len(orders), 2)
	}
	if orders[0].GetDirection() != common.Sell || orders[0].GetTicker() != "AAPL" {
		t.Errorf("received: %v %v, expected AAPL sell first", orders[0].GetTicker(), orders[0].GetDirection())
	}
	if orders[1].GetDirection() != common.Buy || orders[1].GetTicker() != "MSFT" {
		t.Errorf("received: %v %v, expected MSFT buy second", orders[1].GetTicker(), orders[1].GetDirection())
	}
	if orders[0].GetID() == "" || orders[0].GetID() == orders[1].GetID() {
		t.Error("expected distinct non-empty order IDs")
	}
}

func TestOnSignalUnknownTickerRejected(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	sig := &signal.Signal{
		Base:    event.Base{Time: tn},
		Weights: map[string]decimal.Decimal{"GOOG": decimal.NewFromInt(1)},
	}
	orders, err := p.OnSignal(sig)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 0 {
		t.Errorf("received: %v, expected no orders for unpriced ticker", len(orders))
	}
	if err = p.Finalise(); err != nil {
		t.Fatal(err)
	}
	log, err := p.TradeLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 || log[0].Status != common.Rejected || log[0].Direction != common.MissingData {
		t.Errorf("received: %+v, expected a rejected missing data record", log)
	}
}

func TestOnFillAccounting(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	buy := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn},
		Direction:     common.Buy,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(100),
		PurchasePrice: decimal.NewFromInt(100),
		Fee:           decimal.NewFromInt(10),
	}
	if err := p.OnFill(buy); err != nil {
		t.Fatal(err)
	}
	// 100,000 - 10,000 - 10
	if !p.Cash().Equal(decimal.NewFromInt(89990)) {
		t.Errorf("received: %v, expected: %v", p.Cash(), 89990)
	}
	if !p.Quantity("AAPL").Equal(decimal.NewFromInt(100)) {
		t.Errorf("received: %v, expected: %v", p.Quantity("AAPL"), 100)
	}
	// equity = cash + 100 shares marked at 100
	if !p.Equity().Equal(decimal.NewFromInt(99990)) {
		t.Errorf("received: %v, expected: %v", p.Equity(), 99990)
	}

	sell := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn.AddDate(0, 0, 1)},
		Direction:     common.Sell,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(100),
		PurchasePrice: decimal.NewFromInt(110),
	}
	if err := p.OnFill(sell); err != nil {
		t.Fatal(err)
	}
	if !p.Cash().Equal(decimal.NewFromInt(100990)) {
		t.Errorf("received: %v, expected: %v", p.Cash(), 100990)
	}
	if !p.Quantity("AAPL").IsZero() {
		t.Errorf("received: %v, expected position removed", p.Quantity("AAPL"))
	}
	if len(p.Positions()) != 0 {
		t.Errorf("received: %v, expected zero quantity position destroyed", p.Positions())
	}

	if err := p.Finalise(); err != nil {
		t.Fatal(err)
	}
	log, err := p.TradeLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("received: %v, expected: %v", len(log), 2)
	}
	if !log[1].RealizedPnL.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("received: %v, expected realized pnl of 1000", log[1].RealizedPnL)
	}
}

func TestOnFillNegativeCashIsViolation(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	buy := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn},
		Direction:     common.Buy,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(2000),
		PurchasePrice: decimal.NewFromInt(100),
	}
	if err := p.OnFill(buy); !errors.Is(err, common.ErrAccountingViolation) {
		t.Errorf("received: %v, expected: %v", err, common.ErrAccountingViolation)
	}
}

func TestOnFillRejectedOnlyLogged(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	rej := &fill.Fill{
		Base:      event.Base{Ticker: "AAPL", Time: tn},
		Direction: common.CouldNotBuy,
		Status:    common.Rejected,
	}
	if err := p.OnFill(rej); err != nil {
		t.Fatal(err)
	}
	if !p.Cash().Equal(decimal.NewFromInt(100000)) {
		t.Errorf("received: %v, expected cash untouched", p.Cash())
	}
	if err := p.Finalise(); err != nil {
		t.Fatal(err)
	}
	log, err := p.TradeLog()
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 1 || log[0].Status != common.Rejected {
		t.Errorf("received: %+v, expected one rejected record", log)
	}
}

func TestSnapshotEquityOrdering(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.SnapshotEquity(tn, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.SnapshotEquity(tn, 1); !errors.Is(err, errOutOfOrderEquity) {
		t.Errorf("received: %v, expected: %v", err, errOutOfOrderEquity)
	}
	if err := p.SnapshotEquity(tn.AddDate(0, 0, 1), 1); err != nil {
		t.Error(err)
	}
	if err := p.Finalise(); err != nil {
		t.Fatal(err)
	}
	curve, err := p.EquityCurve()
	if err != nil {
		t.Fatal(err)
	}
	if len(curve) != 2 {
		t.Fatalf("received: %v, expected: %v", len(curve), 2)
	}
	if !curve[0].TotalValue.Equal(decimal.NewFromInt(100000)) {
		t.Errorf("received: %v, expected: %v", curve[0].TotalValue, 100000)
	}
}

func TestAverageCost(t *testing.T) {
	t.Parallel()
	p := testPortfolio(t)
	if err := p.OnBar(testMarketBar("AAPL", tn, 100)); err != nil {
		t.Fatal(err)
	}
	f := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn},
		Direction:     common.Buy,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(100),
	}
	if err := p.OnFill(f); err != nil {
		t.Fatal(err)
	}
	f2 := &fill.Fill{
		Base:          event.Base{Ticker: "AAPL", Time: tn.AddDate(0, 0, 1)},
		Direction:     common.Buy,
		Status:        common.Filled,
		Amount:        decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(110),
	}
	if err := p.OnFill(f2); err != nil {
		t.Fatal(err)
	}
	positions := p.Positions()
	if len(positions) != 1 {
		t.Fatalf("received: %v, expected: %v", len(positions), 1)
	}
	if !positions[0].AverageCost.Equal(decimal.NewFromInt(105)) {
		t.Errorf("received: %v, expected: %v", positions[0].AverageCost, 105)
	}
}
