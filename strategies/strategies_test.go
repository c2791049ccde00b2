package strategies

import (
	"errors"
	"testing"

	"github.com/quantfoundry/backtester/strategies/macd"
	"github.com/quantfoundry/backtester/strategies/momentum"
)

func TestGetStrategies(t *testing.T) {
	t.Parallel()
	if resp := GetStrategies(); len(resp) < 4 {
		t.Errorf("received: %v strategies, expected at least %v", len(resp), 4)
	}
}

func TestLoadStrategyByName(t *testing.T) {
	t.Parallel()
	_, err := LoadStrategyByName("not-a-strategy")
	if !errors.Is(err, ErrStrategyNotFound) {
		t.Errorf("received: %v, expected: %v", err, ErrStrategyNotFound)
	}
	s, err := LoadStrategyByName("BuyAndHold")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name() != "buyandhold" {
		t.Errorf("received: %v, expected: %v", s.Name(), "buyandhold")
	}
	m, err := LoadStrategyByName(momentum.Name)
	if err != nil {
		t.Fatal(err)
	}
	// defaults applied on load
	if m.WarmupPeriods() == 0 {
		t.Error("expected momentum to require warmup after defaults")
	}
	c, err := LoadStrategyByName(macd.Name)
	if err != nil {
		t.Fatal(err)
	}
	if c.WarmupPeriods() == 0 {
		t.Error("expected macd to require warmup after defaults")
	}
}
