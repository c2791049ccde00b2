package signal

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// GetKind ranks signals after market data and before orders
func (s *Signal) GetKind() common.Kind {
	return common.KindSignal
}

// IsSignal returns whether the event is a signal type
func (s *Signal) IsSignal() bool {
	return true
}

// GetWeights returns the ticker to target weight mapping
func (s *Signal) GetWeights() map[string]decimal.Decimal {
	return s.Weights
}

// Tickers returns the signalled tickers in lexical order. Map iteration
// order is not deterministic, so every consumer must range over this instead
func (s *Signal) Tickers() []string {
	tickers := make([]string, 0, len(s.Weights))
	for t := range s.Weights {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
