// Package holdings records the portfolio's value over time. One Holding is
// appended to the equity curve per processed timestamp; the curve is
// append-only and strictly timestamp ordered.
package holdings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one point on the equity curve
type Holding struct {
	Offset         int64           `json:"offset"`
	Timestamp      time.Time       `json:"timestamp"`
	Cash           decimal.Decimal `json:"cash"`
	PositionsValue decimal.Decimal `json:"positions-value"`
	TotalValue     decimal.Decimal `json:"total-value"`
	// TotalFees is the cumulative transaction cost charged up to this point
	TotalFees decimal.Decimal `json:"total-fees"`
}

// ChangeInTotalValue returns the fractional change from a previous holding
func (h *Holding) ChangeInTotalValue(previous *Holding) decimal.Decimal {
	if previous == nil || previous.TotalValue.IsZero() {
		return decimal.Zero
	}
	return h.TotalValue.Sub(previous.TotalValue).Div(previous.TotalValue)
}
