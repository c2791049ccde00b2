package macd

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/data/bars"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
	"github.com/quantfoundry/backtester/strategies/base"
)

var tn = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// testHandler streams every provided close and leaves the handler positioned
// on the final bar
func testHandler(t *testing.T, ticker string, closes ...int64) data.Handler {
	t.Helper()
	b := make([]bar.Bar, len(closes))
	for i := range closes {
		d := decimal.NewFromInt(closes[i])
		b[i] = bar.Bar{
			Base:   event.Base{Time: tn.AddDate(0, 0, i)},
			Open:   d,
			High:   d,
			Low:    d,
			Close:  d,
			Volume: decimal.NewFromInt(1000),
		}
	}
	h := &bars.DataFromBars{Ticker: ticker, Bars: b}
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}
	for range closes {
		h.Next()
	}
	return h
}

func TestSetCustomSettings(t *testing.T) {
	t.Parallel()
	s := &Strategy{}
	s.SetDefaults()
	if s.fast != defaultFast || s.slow != defaultSlow || s.smooth != defaultSignal {
		t.Errorf("received: %v %v %v, expected the default periods", s.fast, s.slow, s.smooth)
	}
	err := s.SetCustomSettings(map[string]interface{}{fastKey: 3.0, slowKey: 5.0, signalKey: 2.0})
	if err != nil {
		t.Error(err)
	}
	if s.fast != 3 || s.slow != 5 || s.smooth != 2 {
		t.Errorf("received: %v %v %v, expected: 3 5 2", s.fast, s.slow, s.smooth)
	}
	err = s.SetCustomSettings(map[string]interface{}{fastKey: -1.0})
	if !errors.Is(err, errInvalidPeriod) {
		t.Errorf("received: %v, expected: %v", err, errInvalidPeriod)
	}
	err = s.SetCustomSettings(map[string]interface{}{fastKey: 1.5})
	if !errors.Is(err, errInvalidPeriod) {
		t.Errorf("received: %v, expected: %v", err, errInvalidPeriod)
	}
	err = s.SetCustomSettings(map[string]interface{}{"unknown": 1.0})
	if !errors.Is(err, base.ErrCustomSettingsUnsupported) {
		t.Errorf("received: %v, expected: %v", err, base.ErrCustomSettingsUnsupported)
	}
	s.SetDefaults()
	err = s.SetCustomSettings(map[string]interface{}{fastKey: 30.0})
	if !errors.Is(err, errFastNotBelowSlow) {
		t.Errorf("received: %v, expected: %v", err, errFastNotBelowSlow)
	}
}

func TestOnDataHoldsBullishCrossovers(t *testing.T) {
	t.Parallel()
	s := &Strategy{fast: 3, slow: 5, smooth: 2}
	weights, err := s.OnData([]data.Handler{
		testHandler(t, "DOWN", 100, 98, 96, 94, 92, 90, 88, 86),
		testHandler(t, "UP", 100, 102, 104, 106, 108, 110, 112, 114),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !weights["DOWN"].IsZero() {
		t.Errorf("received: %v, expected no weight below the signal line", weights["DOWN"])
	}
	if !weights["UP"].Equal(decimal.NewFromInt(1)) {
		t.Errorf("received: %v, expected: %v", weights["UP"], 1)
	}
}

func TestOnDataSplitsAcrossBullish(t *testing.T) {
	t.Parallel()
	s := &Strategy{fast: 3, slow: 5, smooth: 2}
	weights, err := s.OnData([]data.Handler{
		testHandler(t, "UP", 100, 102, 104, 106, 108, 110, 112, 114),
		testHandler(t, "UP2", 50, 51, 52, 53, 54, 55, 56, 57),
	})
	if err != nil {
		t.Fatal(err)
	}
	half := decimal.NewFromInt(1).Div(decimal.NewFromInt(2))
	if !weights["UP"].Equal(half) || !weights["UP2"].Equal(half) {
		t.Errorf("received: %v and %v, expected: %v", weights["UP"], weights["UP2"], half)
	}
}

func TestOnDataInsufficientHistory(t *testing.T) {
	t.Parallel()
	s := &Strategy{fast: 3, slow: 5, smooth: 2}
	weights, err := s.OnData([]data.Handler{
		testHandler(t, "UP", 100, 102, 104),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !weights["UP"].IsZero() {
		t.Errorf("received: %v, expected zero weight without enough history", weights["UP"])
	}
}

func TestOnDataNilChecks(t *testing.T) {
	t.Parallel()
	s := &Strategy{fast: 3, slow: 5, smooth: 2}
	if _, err := s.OnData(nil); !errors.Is(err, common.ErrNilArguments) {
		t.Errorf("received: %v, expected: %v", err, common.ErrNilArguments)
	}
	if _, err := s.OnData([]data.Handler{nil}); !errors.Is(err, common.ErrNilArguments) {
		t.Errorf("received: %v, expected: %v", err, common.ErrNilArguments)
	}
}

func TestEWMA(t *testing.T) {
	t.Parallel()
	series := []decimal.Decimal{
		decimal.NewFromInt(10),
		decimal.NewFromInt(20),
		decimal.NewFromInt(30),
	}
	// span 1 gives alpha 1, so the average tracks the series exactly
	out := ewma(series, 1)
	for i := range series {
		if !out[i].Equal(series[i]) {
			t.Errorf("received: %v, expected: %v", out[i], series[i])
		}
	}
	// flat input stays flat for any span
	flat := []decimal.Decimal{
		decimal.NewFromInt(5),
		decimal.NewFromInt(5),
		decimal.NewFromInt(5),
	}
	out = ewma(flat, 4)
	for i := range flat {
		if !out[i].Equal(decimal.NewFromInt(5)) {
			t.Errorf("received: %v, expected: %v", out[i], 5)
		}
	}
}
