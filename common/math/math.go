// Package math provides the decimal statistics helpers shared by the
// portfolio and statistics packages. Ratios that require fractional
// exponents or square roots pass through float64 and convert back, which
// is stable and reproducible for identical inputs.
package math

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoDataProvided occurs when a calculation receives an empty series
	ErrNoDataProvided = errors.New("no data provided")
	// ErrPowerDifferenceTooSmall occurs when the CAGR period ratio cannot be
	// calculated
	ErrPowerDifferenceTooSmall = errors.New("period difference too small")
	errZeroOpenValue           = errors.New("open value cannot be zero")
)

// DecimalArithmeticMean returns the arithmetic average of the provided values
func DecimalArithmeticMean(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) == 0 {
		return decimal.Zero, ErrNoDataProvided
	}
	var sum decimal.Decimal
	for i := range values {
		sum = sum.Add(values[i])
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))), nil
}

// DecimalSampleStandardDeviation measures the dispersion of a dataset
// relative to its mean, using the sample based calculation
func DecimalSampleStandardDeviation(values []decimal.Decimal) (decimal.Decimal, error) {
	if len(values) <= 1 {
		return decimal.Zero, nil
	}
	mean, err := DecimalArithmeticMean(values)
	if err != nil {
		return decimal.Zero, err
	}
	var combined decimal.Decimal
	for i := range values {
		diff := values[i].Sub(mean)
		combined = combined.Add(diff.Mul(diff))
	}
	avg := combined.Div(decimal.NewFromInt(int64(len(values) - 1)))
	f, _ := avg.Float64()
	return decimal.NewFromFloat(math.Sqrt(f)), nil
}

// DecimalCompoundAnnualGrowthRate calculates CAGR over a series of periods.
// Using daily bars, intervalsPerYear would be 252 and numberOfIntervals the
// number of bars traversed by the equity curve
func DecimalCompoundAnnualGrowthRate(openValue, closeValue, intervalsPerYear, numberOfIntervals decimal.Decimal) (decimal.Decimal, error) {
	if openValue.IsZero() {
		return decimal.Zero, errZeroOpenValue
	}
	if numberOfIntervals.IsZero() {
		return decimal.Zero, ErrPowerDifferenceTooSmall
	}
	ratio, _ := closeValue.Div(openValue).Float64()
	exp, _ := intervalsPerYear.Div(numberOfIntervals).Float64()
	return decimal.NewFromFloat(math.Pow(ratio, exp) - 1), nil
}

// DecimalPercentageChange returns the fractional rise or fall between two
// values
func DecimalPercentageChange(valueNow, valueThen decimal.Decimal) (decimal.Decimal, error) {
	if valueThen.IsZero() {
		return decimal.Zero, ErrNoDataProvided
	}
	return valueNow.Sub(valueThen).Div(valueThen), nil
}

// DecimalSqrt returns the square root of d via float64
func DecimalSqrt(d decimal.Decimal) decimal.Decimal {
	f, _ := d.Float64()
	if f <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(math.Sqrt(f))
}
