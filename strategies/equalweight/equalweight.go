// Package equalweight targets an equal share of equity in every ticker on
// every rebalance, selling winners back down and topping losers back up.
package equalweight

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/strategies/base"
)

// Name is the strategy's registry key
const Name = "equalweight"

// Strategy rebalances to equal weights
type Strategy struct {
	base.Strategy
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return "Rebalances to an equal weight in every ticker on each rebalance bar"
}

// WarmupPeriods returns how many bars are needed before the first signal
func (s *Strategy) WarmupPeriods() int {
	return 0
}

// OnData emits 1/n target weights for the n tickers with current data
func (s *Strategy) OnData(d []data.Handler) (map[string]decimal.Decimal, error) {
	if len(d) == 0 {
		return nil, common.ErrNilArguments
	}
	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(d))))
	weights := make(map[string]decimal.Decimal, len(d))
	for i := range d {
		latest, err := s.GetBaseData(d[i])
		if err != nil {
			return nil, err
		}
		weights[latest.GetTicker()] = weight
	}
	return weights, nil
}
