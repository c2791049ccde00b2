// Package strategies provides the strategy registry. A strategy is a pure
// function of the data window it is handed: it sees history up to and
// including the current bar, never anything later, and never the portfolio.
// Its entire output is a set of target weights.
package strategies

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/data"
)

// ErrStrategyNotFound occurs when a requested strategy does not exist
var ErrStrategyNotFound = errors.New("strategy not found")

// Handler is what a strategy must implement to be run by the engine
type Handler interface {
	Name() string
	Description() string
	// WarmupPeriods is how many bars of history the strategy needs before
	// its first signal is meaningful
	WarmupPeriods() int
	// OnData receives one data handler per ticker, each positioned at the
	// current bar, and returns target portfolio weights keyed by ticker. A
	// nil map means no opinion this bar
	OnData(d []data.Handler) (map[string]decimal.Decimal, error)
	SetCustomSettings(map[string]interface{}) error
	SetDefaults()
}
