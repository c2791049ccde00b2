package math

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecimalArithmeticMean(t *testing.T) {
	t.Parallel()
	_, err := DecimalArithmeticMean(nil)
	if !errors.Is(err, ErrNoDataProvided) {
		t.Errorf("received: %v, expected: %v", err, ErrNoDataProvided)
	}
	avg, err := DecimalArithmeticMean([]decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.NewFromInt(4),
		decimal.NewFromInt(6),
	})
	if err != nil {
		t.Error(err)
	}
	if !avg.Equal(decimal.NewFromInt(4)) {
		t.Errorf("received: %v, expected: %v", avg, 4)
	}
}

func TestDecimalSampleStandardDeviation(t *testing.T) {
	t.Parallel()
	sd, err := DecimalSampleStandardDeviation([]decimal.Decimal{decimal.NewFromInt(1)})
	if err != nil {
		t.Error(err)
	}
	if !sd.IsZero() {
		t.Errorf("received: %v, expected: %v", sd, 0)
	}
	sd, err = DecimalSampleStandardDeviation([]decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.NewFromInt(4),
		decimal.NewFromInt(4),
		decimal.NewFromInt(4),
		decimal.NewFromInt(5),
		decimal.NewFromInt(5),
		decimal.NewFromInt(7),
		decimal.NewFromInt(9),
	})
	if err != nil {
		t.Error(err)
	}
	expected := decimal.NewFromFloat(2.138089935299395)
	if sd.Sub(expected).Abs().GreaterThan(decimal.NewFromFloat(0.000001)) {
		t.Errorf("received: %v, expected: %v", sd, expected)
	}
}

func TestDecimalCompoundAnnualGrowthRate(t *testing.T) {
	t.Parallel()
	_, err := DecimalCompoundAnnualGrowthRate(decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(252), decimal.NewFromInt(10))
	if err == nil {
		t.Error("expected error on zero open value")
	}
	// doubling over exactly one year of periods is 100% CAGR
	cagr, err := DecimalCompoundAnnualGrowthRate(
		decimal.NewFromInt(100),
		decimal.NewFromInt(200),
		decimal.NewFromInt(252),
		decimal.NewFromInt(252))
	if err != nil {
		t.Error(err)
	}
	if !cagr.Equal(decimal.NewFromInt(1)) {
		t.Errorf("received: %v, expected: %v", cagr, 1)
	}
	// a flat curve has zero growth
	cagr, err = DecimalCompoundAnnualGrowthRate(
		decimal.NewFromInt(100000),
		decimal.NewFromInt(100000),
		decimal.NewFromInt(252),
		decimal.NewFromInt(252))
	if err != nil {
		t.Error(err)
	}
	if !cagr.IsZero() {
		t.Errorf("received: %v, expected: %v", cagr, 0)
	}
}

func TestDecimalPercentageChange(t *testing.T) {
	t.Parallel()
	_, err := DecimalPercentageChange(decimal.NewFromInt(1), decimal.Zero)
	if !errors.Is(err, ErrNoDataProvided) {
		t.Errorf("received: %v, expected: %v", err, ErrNoDataProvided)
	}
	change, err := DecimalPercentageChange(decimal.NewFromInt(110), decimal.NewFromInt(100))
	if err != nil {
		t.Error(err)
	}
	if !change.Equal(decimal.NewFromFloat(0.1)) {
		t.Errorf("received: %v, expected: %v", change, 0.1)
	}
}
