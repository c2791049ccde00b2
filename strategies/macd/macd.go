package macd

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
	return "Holds tickers whose MACD line is above its signal line, equally weighted"
}

// WarmupPeriods returns how many bars are needed before the first signal
func (s *Strategy) WarmupPeriods() int {
	return s.slow + s.smooth
}

// SetDefaults sets the custom settings to their default values
func (s *Strategy) SetDefaults() {
	s.fast = defaultFast
	s.slow = defaultSlow
	s.smooth = defaultSignal
}

// SetCustomSettings parses custom settings for the strategy
func (s *Strategy) SetCustomSettings(settings map[string]interface{}) error {
	for k, v := range settings {
		switch k {
		case fastKey, slowKey, signalKey:
		default:
			return fmt.Errorf("%w: %v", base.ErrCustomSettingsUnsupported, k)
		}
		period, ok := v.(float64)
		if !ok || period <= 0 || period != float64(int(period)) {
			return fmt.Errorf("%w, received %v: %v", errInvalidPeriod, k, v)
		}
		switch k {
		case fastKey:
			s.fast = int(period)
		case slowKey:
			s.slow = int(period)
		case signalKey:
			s.smooth = int(period)
		}
	}
	if s.fast >= s.slow {
		return fmt.Errorf("%w: %v >= %v", errFastNotBelowSlow, s.fast, s.slow)
	}
	return nil
}

// OnData splits target weight equally across the tickers whose MACD line sits
// above its signal line. Tickers without enough history yet get no weight
func (s *Strategy) OnData(d []data.Handler) (map[string]decimal.Decimal, error) {
	if len(d) == 0 {
		return nil, common.ErrNilArguments
	}
	weights := make(map[string]decimal.Decimal, len(d))
	var bullish []string
	for i := range d {
		latest, err := s.GetBaseData(d[i])
		if err != nil {
			return nil, err
		}
		ticker := latest.GetTicker()
		weights[ticker] = decimal.Zero
		closes := d[i].StreamClose()
		if len(closes) < s.slow {
			continue
		}
		fast := ewma(closes, s.fast)
		slow := ewma(closes, s.slow)
		line := make([]decimal.Decimal, len(closes))
		for j := range closes {
			line[j] = fast[j].Sub(slow[j])
		}
		signalLine := ewma(line, s.smooth)
		if line[len(line)-1].GreaterThan(signalLine[len(signalLine)-1]) {
			bullish = append(bullish, ticker)
		}
	}
	if len(bullish) == 0 {
		return weights, nil
	}
	weight := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(bullish))))
	for _, ticker := range bullish {
		weights[ticker] = weight
	}
	return weights, nil
}

// ewma is an exponentially weighted moving average seeded with the series'
// first value, smoothing factor 2/(span+1)
func ewma(series []decimal.Decimal, span int) []decimal.Decimal {
	out := make([]decimal.Decimal, len(series))
	if len(series) == 0 {
		return out
	}
	alpha := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(span) + 1))
	complement := decimal.NewFromInt(1).Sub(alpha)
	out[0] = series[0]
	for i := 1; i < len(series); i++ {
		out[i] = series[i].Mul(alpha).Add(out[i-1].Mul(complement))
	}
	return out
}
