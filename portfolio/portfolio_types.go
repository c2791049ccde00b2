// Package portfolio is the single mutable aggregate root for a backtest run.
// It owns cash, positions, the equity curve and the trade log, and moves
// through Uninitialized -> Active -> Finalized exactly once. Nothing outside
// the engine holds a long-lived reference to it.
package portfolio

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/portfolio/compliance"
	"github.com/quantfoundry/backtester/portfolio/holdings"
	"github.com/quantfoundry/backtester/portfolio/size"
)

// State is the lifecycle stage of the portfolio
type State uint8

const (
	// Uninitialized is the created-but-unseeded stage
	Uninitialized State = iota
	// Active is entered once seeded with initial cash; all market and fill
	// application happens here
	Active
	// Finalized is entered when the engine loop completes; the portfolio is
	// read-only thereafter
	Finalized
)

var (
	errSizeManagerUnset = errors.New("size manager unset")
	errAlreadySeeded    = errors.New("portfolio already seeded")
	errNotActive        = errors.New("portfolio is not active")
	errNotFinalized     = errors.New("portfolio is not finalized")
	errInvalidSeed      = errors.New("initial cash must be positive")
	errOutOfOrderEquity = errors.New("equity curve must be strictly timestamp ordered")
	errUnknownDirection = errors.New("unknown order direction")
)

// Position is the holding in a single ticker, mutated only by fills and
// removed when its quantity returns to zero
type Position struct {
	Ticker      string          `json:"ticker"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average-cost"`
}

// Portfolio manages the state of cash and positions during a backtest
type Portfolio struct {
	state        State
	initialCash  decimal.Decimal
	cash         decimal.Decimal
	positions    map[string]*Position
	marks        map[string]decimal.Decimal
	staleBars    map[string]int
	maxStaleBars int
	totalFees    decimal.Decimal
	equityCurve  []holdings.Holding
	compliance   compliance.Manager
	sizeManager  size.Handler
	orderSeq     int64
	log          *zap.SugaredLogger
}
