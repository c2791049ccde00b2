// Package momentum holds tickers whose price rose over a lookback window and
// stays out of the ones that fell. Weights are split equally across the
// risers; when nothing rose, everything goes to cash.
package momentum

import (
	"errors"

	"github.com/quantfoundry/backtester/strategies/base"
)

// Name is the strategy's registry key
const Name = "momentum"

const (
	lookbackKey     = "lookback"
	defaultLookback = 20
)

var errInvalidLookback = errors.New("lookback must be a positive whole number")

// Strategy splits the portfolio across tickers with positive trailing returns
type Strategy struct {
	base.Strategy
	lookback int
}
