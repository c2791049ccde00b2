// Package macd trades the crossover state of the moving average convergence
// divergence indicator. Tickers whose MACD line sits above its signal line
// split the portfolio equally; the rest are exited to cash.
package macd

import (
	"errors"

	"github.com/quantfoundry/backtester/strategies/base"
)

// Name is the strategy's registry key
const Name = "macd"

const (
	fastKey   = "fast-period"
	slowKey   = "slow-period"
	signalKey = "signal-period"

	defaultFast   = 12
	defaultSlow   = 26
	defaultSignal = 9
)

var (
	errInvalidPeriod    = errors.New("period must be a positive whole number")
	errFastNotBelowSlow = errors.New("fast period must be below the slow period")
)

// Strategy holds tickers whose MACD line is above its signal line
type Strategy struct {
	base.Strategy
	fast   int
	slow   int
	smooth int
}
