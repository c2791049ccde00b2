package strategies

import (
	"fmt"
	"strings"

	"github.com/quantfoundry/backtester/strategies/buyandhold"
	"github.com/quantfoundry/backtester/strategies/equalweight"
	"github.com/quantfoundry/backtester/strategies/macd"
	"github.com/quantfoundry/backtester/strategies/momentum"
)

// GetStrategies returns a fresh instance of every strategy in the registry
func GetStrategies() []Handler {
	return []Handler{
		new(buyandhold.Strategy),
		new(equalweight.Strategy),
		new(macd.Strategy),
		new(momentum.Strategy),
	}
}

// LoadStrategyByName returns the strategy matching the provided name with
// its defaults applied
func LoadStrategyByName(name string) (Handler, error) {
	for _, s := range GetStrategies() {
		if strings.EqualFold(name, s.Name()) {
			s.SetDefaults()
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrStrategyNotFound, name)
}
