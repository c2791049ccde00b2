// Package statistics turns a finalized equity curve and trade log into
// performance metrics. It is pure: the same curve and log always produce the
// same results, and calculating results never mutates its inputs.
package statistics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errNoEquityCurve = errors.New("equity curve is empty")
)

// Drawdown describes the deepest peak-to-trough loss of the run
type Drawdown struct {
	// Depth is the loss as a fraction of the peak value
	Depth      decimal.Decimal `json:"depth"`
	PeakTime   time.Time       `json:"peak-time"`
	TroughTime time.Time       `json:"trough-time"`
	// Duration is the number of bars from the peak until the curve regained
	// it, or until the end of the run if it never did
	Duration int64 `json:"duration"`
}

// Results holds the performance metrics of one run
type Results struct {
	StartDate    time.Time       `json:"start-date"`
	EndDate      time.Time       `json:"end-date"`
	InitialValue decimal.Decimal `json:"initial-value"`
	FinalValue   decimal.Decimal `json:"final-value"`
	TotalReturn  decimal.Decimal `json:"total-return"`
	CAGR         decimal.Decimal `json:"cagr"`
	// AnnualizedVolatility is the sample standard deviation of per-bar
	// returns scaled by the square root of periods per year
	AnnualizedVolatility decimal.Decimal `json:"annualized-volatility"`
	// SharpeRatio is null rather than zero or infinity when volatility is
	// zero, so a flat run is distinguishable from a genuinely risk-free one
	SharpeRatio  decimal.NullDecimal `json:"sharpe-ratio"`
	MaxDrawdown  Drawdown            `json:"max-drawdown"`
	TotalFees    decimal.Decimal     `json:"total-fees"`
	TotalOrders  int                 `json:"total-orders"`
	FilledOrders int                 `json:"filled-orders"`
	PartialFills int                 `json:"partial-fills"`
	Rejections   int                 `json:"rejections"`
	// WinRate is the fraction of position-closing trades that realized a
	// profit; null when the run closed no positions
	WinRate decimal.NullDecimal `json:"win-rate"`
}
