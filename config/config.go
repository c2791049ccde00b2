package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// ReadConfigFromFile loads and decodes a JSON run configuration
func ReadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}
	resp := &Config{}
	err := v.Unmarshal(resp, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		decimalDecodeHook,
	)))
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	return resp, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("rebalance-every-n-bars", 1)
	v.SetDefault("max-stale-bars", 5)
	v.SetDefault("fill.model", FillModelNextOpen)
	v.SetDefault("fill.participation-policy", PolicyReject)
	v.SetDefault("portfolio.cash-policy", PolicyScale)
	v.SetDefault("portfolio.max-weight", "1")
	v.SetDefault("statistics.periods-per-year", 252)
	v.SetDefault("data.source", DataSourceCSV)
}

// decimalDecodeHook converts config file numbers and strings into decimals
// so money figures never pass through binary floating point
func decimalDecodeHook(_, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(decimal.Decimal{}) {
		return data, nil
	}
	switch val := data.(type) {
	case float64:
		return decimal.NewFromFloat(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case string:
		return decimal.NewFromString(val)
	default:
		return data, nil
	}
}

// Validate checks all config settings and parses the date range. It must be
// called before a config is used to build a run
func (c *Config) Validate() error {
	if c.Strategy == "" {
		return errNoStrategy
	}
	if len(c.Tickers) == 0 {
		return errNoTickers
	}
	seen := make(map[string]struct{}, len(c.Tickers))
	for i := range c.Tickers {
		if _, ok := seen[c.Tickers[i]]; ok {
			return fmt.Errorf("%w: %v", errDuplicateTicker, c.Tickers[i])
		}
		seen[c.Tickers[i]] = struct{}{}
	}
	if !c.InitialCash.IsPositive() {
		return errInvalidInitialCash
	}
	if err := c.validateDate(); err != nil {
		return err
	}
	if c.RebalanceEveryNBars < 1 {
		return errNegativeRebalance
	}
	if c.MaxStaleBars < 0 {
		return errNegativeMaxStaleBars
	}
	if err := c.validateFill(); err != nil {
		return err
	}
	if err := c.validatePortfolio(); err != nil {
		return err
	}
	if c.Fees.Fixed.IsNegative() || c.Fees.Bps.IsNegative() {
		return errNegativeFee
	}
	if c.Statistics.PeriodsPerYear <= 0 {
		return errInvalidPeriodsPerYear
	}
	switch c.Data.Source {
	case DataSourceCSV, DataSourceClickHouse:
	default:
		return fmt.Errorf("%w: %v", errUnknownDataSource, c.Data.Source)
	}
	return nil
}

func (c *Config) validateDate() error {
	var err error
	c.start, err = time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("could not parse start date: %w", err)
	}
	c.end, err = time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("could not parse end date: %w", err)
	}
	if !c.start.Before(c.end) {
		return errInvalidDateRange
	}
	return nil
}

func (c *Config) validateFill() error {
	switch c.Fill.Model {
	case FillModelNextOpen, FillModelNextOpenSlippage, FillModelVWAP:
	default:
		return fmt.Errorf("%w: %v", errUnknownFillModel, c.Fill.Model)
	}
	switch c.Fill.ParticipationPolicy {
	case PolicyPartial, PolicyReject:
	default:
		return fmt.Errorf("%w: %v", errUnknownPolicy, c.Fill.ParticipationPolicy)
	}
	if c.Fill.MaxParticipation.IsNegative() ||
		c.Fill.MaxParticipation.GreaterThan(decimal.NewFromInt(1)) {
		return errInvalidParticipation
	}
	if c.Fill.SlippagePercent.IsNegative() {
		return fmt.Errorf("%w: negative slippage", errUnknownFillModel)
	}
	return nil
}

func (c *Config) validatePortfolio() error {
	switch c.Portfolio.CashPolicy {
	case PolicyScale, PolicyReject:
	default:
		return fmt.Errorf("%w: %v", errUnknownPolicy, c.Portfolio.CashPolicy)
	}
	if c.Portfolio.MinTradeValue.IsNegative() {
		return errNegativeMinTradeValue
	}
	if !c.Portfolio.MaxWeight.IsPositive() {
		return errInvalidWeightBound
	}
	return nil
}

// Start returns the parsed backtest start date
func (c *Config) Start() time.Time {
	return c.start
}

// End returns the parsed backtest end date
func (c *Config) End() time.Time {
	return c.end
}
