// Package buyandhold allocates the portfolio equally across the universe at
// the first bar and never trades again. It is the baseline every other
// strategy is judged against.
package buyandhold

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/strategies/base"
)

// Name is the strategy's registry key
const Name = "buyandhold"

// Strategy buys once and holds
type Strategy struct {
	base.Strategy
}

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return "Allocates equally across all tickers at the first bar and holds to the end"
}

// WarmupPeriods returns how many bars are needed before the first signal
func (s *Strategy) WarmupPeriods() int {
	return 0
}

// OnData emits equal target weights at the very first bar and stays silent
// thereafter
func (s *Strategy) OnData(d []data.Handler) (map[string]decimal.Decimal, error) {
	if len(d) == 0 {
		return nil, common.ErrNilArguments
	}
	firstBar := false
	for i := range d {
		if _, err := s.GetBaseData(d[i]); err != nil {
			return nil, err
		}
		if d[i].Offset() == 1 {
			firstBar = true
		}
	}
	if !firstBar {
		return nil, nil
	}
	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(d))))
	weights := make(map[string]decimal.Decimal, len(d))
	for i := range d {
		weights[d[i].Latest().GetTicker()] = weight
	}
	return weights, nil
}
