package bar

import (
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// GetKind ranks market data first among same-timestamp events
func (b *Bar) GetKind() common.Kind {
	return common.KindMarket
}

// GetOpenPrice returns the open price of the bar
func (b *Bar) GetOpenPrice() decimal.Decimal {
	return b.Open
}

// GetHighPrice returns the high price of the bar
func (b *Bar) GetHighPrice() decimal.Decimal {
	return b.High
}

// GetLowPrice returns the low price of the bar
func (b *Bar) GetLowPrice() decimal.Decimal {
	return b.Low
}

// GetClosePrice returns the close price of the bar
func (b *Bar) GetClosePrice() decimal.Decimal {
	return b.Close
}

// GetVolume returns the traded volume of the bar
func (b *Bar) GetVolume() decimal.Decimal {
	return b.Volume
}

// IsForwardFilled returns whether the bar was synthesised from the last
// known price because real data was missing at this timestamp
func (b *Bar) IsForwardFilled() bool {
	return b.ForwardFilled
}
