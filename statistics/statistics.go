package statistics

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/common"
	qfmath "github.com/quantfoundry/backtester/common/math"
	"github.com/quantfoundry/backtester/portfolio/compliance"
	"github.com/quantfoundry/backtester/portfolio/holdings"
)

// CalculateResults computes every performance metric from a finalized equity
// curve and trade log
func CalculateResults(equityCurve []holdings.Holding, tradeLog []compliance.Record, riskFreeRate decimal.Decimal, periodsPerYear int64) (*Results, error) {
	if len(equityCurve) == 0 {
		return nil, errNoEquityCurve
	}
	first := equityCurve[0]
	last := equityCurve[len(equityCurve)-1]
	resp := &Results{
		StartDate:    first.Timestamp,
		EndDate:      last.Timestamp,
		InitialValue: first.TotalValue,
		FinalValue:   last.TotalValue,
		TotalFees:    last.TotalFees,
		MaxDrawdown:  calculateMaxDrawdown(equityCurve),
	}

	totalReturn, err := qfmath.DecimalPercentageChange(last.TotalValue, first.TotalValue)
	if err != nil {
		return nil, err
	}
	resp.TotalReturn = totalReturn

	intervals := int64(len(equityCurve) - 1)
	if intervals > 0 {
		cagr, err := qfmath.DecimalCompoundAnnualGrowthRate(
			first.TotalValue,
			last.TotalValue,
			decimal.NewFromInt(periodsPerYear),
			decimal.NewFromInt(intervals))
		if err != nil {
			return nil, err
		}
		resp.CAGR = cagr
	}

	returns := make([]decimal.Decimal, 0, len(equityCurve)-1)
	for i := 1; i < len(equityCurve); i++ {
		returns = append(returns, equityCurve[i].ChangeInTotalValue(&equityCurve[i-1]))
	}
	if len(returns) > 1 {
		std, err := qfmath.DecimalSampleStandardDeviation(returns)
		if err != nil {
			return nil, err
		}
		annualisation := qfmath.DecimalSqrt(decimal.NewFromInt(periodsPerYear))
		resp.AnnualizedVolatility = std.Mul(annualisation)
		if !std.IsZero() {
			mean, err := qfmath.DecimalArithmeticMean(returns)
			if err != nil {
				return nil, err
			}
			excess := mean.Sub(riskFreeRate.Div(decimal.NewFromInt(periodsPerYear)))
			resp.SharpeRatio = decimal.NullDecimal{
				Decimal: excess.Div(std).Mul(annualisation),
				Valid:   true,
			}
		}
	}

	countTrades(resp, tradeLog)
	return resp, nil
}

// calculateMaxDrawdown scans the curve against its running peak for the
// deepest fractional loss
func calculateMaxDrawdown(equityCurve []holdings.Holding) Drawdown {
	var resp Drawdown
	peakIdx := 0
	for i := 1; i < len(equityCurve); i++ {
		if equityCurve[i].TotalValue.GreaterThan(equityCurve[peakIdx].TotalValue) {
			peakIdx = i
			continue
		}
		peak := equityCurve[peakIdx].TotalValue
		if peak.IsZero() {
			continue
		}
		depth := peak.Sub(equityCurve[i].TotalValue).Div(peak)
		if depth.GreaterThan(resp.Depth) {
			resp.Depth = depth
			resp.PeakTime = equityCurve[peakIdx].Timestamp
			resp.TroughTime = equityCurve[i].Timestamp
			resp.Duration = durationFromPeak(equityCurve, peakIdx)
		}
	}
	return resp
}

// durationFromPeak counts the bars until the curve regains the peak value, or
// to the end of the curve when it never recovers
func durationFromPeak(equityCurve []holdings.Holding, peakIdx int) int64 {
	peak := equityCurve[peakIdx].TotalValue
	for i := peakIdx + 1; i < len(equityCurve); i++ {
		if !equityCurve[i].TotalValue.LessThan(peak) {
			return int64(i - peakIdx)
		}
	}
	return int64(len(equityCurve) - 1 - peakIdx)
}

// countTrades tallies order outcomes and the win rate of closing trades
func countTrades(resp *Results, tradeLog []compliance.Record) {
	var winners, losers int64
	for i := range tradeLog {
		resp.TotalOrders++
		switch tradeLog[i].Status {
		case common.Rejected:
			resp.Rejections++
			continue
		case common.PartiallyFilled:
			resp.PartialFills++
		case common.Filled:
			resp.FilledOrders++
		}
		if tradeLog[i].RealizedPnL.IsPositive() {
			winners++
		} else if tradeLog[i].RealizedPnL.IsNegative() {
			losers++
		}
	}
	if winners+losers > 0 {
		resp.WinRate = decimal.NullDecimal{
			Decimal: decimal.NewFromInt(winners).Div(decimal.NewFromInt(winners + losers)),
			Valid:   true,
		}
	}
}

// PrintResults logs a readable summary of a run's performance
func PrintResults(l *zap.SugaredLogger, nickname string, r *Results) {
	if l == nil || r == nil {
		return
	}
	sharpe := "n/a"
	if r.SharpeRatio.Valid {
		sharpe = r.SharpeRatio.Decimal.Round(4).String()
	}
	winRate := "n/a"
	if r.WinRate.Valid {
		winRate = r.WinRate.Decimal.Round(4).String()
	}
	l.Infow("backtest results",
		"run", nickname,
		"start", r.StartDate,
		"end", r.EndDate,
		"initial-value", r.InitialValue,
		"final-value", r.FinalValue,
		"total-return", r.TotalReturn.Round(6),
		"cagr", r.CAGR.Round(6),
		"annualized-volatility", r.AnnualizedVolatility.Round(6),
		"sharpe-ratio", sharpe,
		"max-drawdown", r.MaxDrawdown.Depth.Round(6),
		"max-drawdown-duration", r.MaxDrawdown.Duration,
		"total-fees", r.TotalFees,
		"orders", r.TotalOrders,
		"filled", r.FilledOrders,
		"partial", r.PartialFills,
		"rejected", r.Rejections,
		"win-rate", winRate,
	)
}
