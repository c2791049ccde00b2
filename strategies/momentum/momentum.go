package momentum

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/strategies/base"
)

// Name returns the name of the strategy
func (s *Strategy) Name() string {
	return Name
}

// Description provides a nice overview of the strategy
func (s *Strategy) Description() string {
	return "Holds tickers with a positive trailing return over the lookback window, equally weighted"
}

// WarmupPeriods returns how many bars are needed before the first signal
func (s *Strategy) WarmupPeriods() int {
	return s.lookback
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.lookback = defaultLookback
}

// SetCustomSettings parses custom settings for the strategy
func (s *Strategy) SetCustomSettings(settings map[string]interface{}) error {
	for k, v := range settings {
		switch k {
		case lookbackKey:
			lookback, ok := v.(float64)
			if !ok || lookback <= 0 || lookback != float64(int(lookback)) {
				return fmt.Errorf("%w, received: %v", errInvalidLookback, v)
			}
			s.lookback = int(lookback)
		default:
			return fmt.Errorf("%w: %v", base.ErrCustomSettingsUnsupported, k)
		}
	}
	return nil
}

// OnData splits target weight equally across the tickers whose close rose
// over the lookback window. Tickers without enough history yet get no weight
func (s *Strategy) OnData(d []data.Handler) (map[string]decimal.Decimal, error) {
	if len(d) == 0 {
		return nil, common.ErrNilArguments
	}
	weights := make(map[string]decimal.Decimal, len(d))
	var risers []string
	for i := range d {
		latest, err := s.GetBaseData(d[i])
		if err != nil {
			return nil, err
		}
		ticker := latest.GetTicker()
		weights[ticker] = decimal.Zero
		closes := d[i].StreamClose()
		if len(closes) <= s.lookback {
			continue
		}
		then := closes[len(closes)-1-s.lookback]
		if then.IsZero() {
			continue
		}
		if latest.GetClosePrice().GreaterThan(then) {
			risers = append(risers, ticker)
		}
	}
	if len(risers) == 0 {
		return weights, nil
	}
	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(risers))))
	for _, ticker := range risers {
		weights[ticker] = weight
	}
	return weights, nil
}
