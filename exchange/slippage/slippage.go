// Package slippage adjusts a model fill price for the cost of crossing the
// spread. The adjustment is a fixed percentage so that two runs over the same
// data always produce the same prices.
package slippage

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

var oneHundred = decimal.NewFromInt(100)

// Apply worsens a price by a percentage in the direction of the trade. Buys
// pay up, sells receive less. A zero percentage returns the price unchanged
func Apply(price, percent decimal.Decimal, direction common.Side) decimal.Decimal {
	if percent.IsZero() {
		return price
	}
	adjustment := price.Mul(percent).Div(oneHundred)
	switch direction {
	case common.Buy:
		return price.Add(adjustment)
	case common.Sell:
		return price.Sub(adjustment)
	}
	return price
}
