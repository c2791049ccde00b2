// Package config defines the run configuration for a backtest. A config is
// passed once at startup and is never mutated mid-run.
package config

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Fill price models
const (
	FillModelNextOpen         = "next-open"
	FillModelNextOpenSlippage = "next-open-slippage"
	FillModelVWAP             = "vwap"
)

// Policies for orders exceeding participation limits or available cash
const (
	PolicyPartial = "partial"
	PolicyReject  = "reject"
	PolicyScale   = "scale"
)

// Data source types
const (
	DataSourceCSV        = "csv"
	DataSourceClickHouse = "clickhouse"
)

var (
	errNoTickers             = errors.New("no tickers provided")
	errDuplicateTicker       = errors.New("duplicate ticker provided")
	errNoStrategy            = errors.New("no strategy provided")
	errInvalidInitialCash    = errors.New("initial cash must be positive")
	errInvalidDateRange      = errors.New("start date must be before end date")
	errUnknownFillModel      = errors.New("unknown fill model")
	errUnknownPolicy         = errors.New("unknown policy")
	errUnknownDataSource     = errors.New("unknown data source")
	errInvalidParticipation  = errors.New("max participation must be between 0 and 1")
	errInvalidPeriodsPerYear = errors.New("periods per year must be positive")
	errNegativeFee           = errors.New("fees cannot be negative")
	errNegativeMinTradeValue = errors.New("minimum trade value cannot be negative")
	errNegativeRebalance     = errors.New("rebalance interval must be at least 1 bar")
	errNegativeMaxStaleBars  = errors.New("max stale bars cannot be negative")
	errInvalidWeightBound    = errors.New("max weight bound must be positive")
)

// DataSettings tells the runner where bars come from
type DataSettings struct {
	Source string `json:"source" mapstructure:"source"`
	// Directory holds one <TICKER>.csv per ticker when the source is csv
	Directory  string             `json:"directory" mapstructure:"directory"`
	ClickHouse ClickHouseSettings `json:"clickhouse" mapstructure:"clickhouse"`
}

// ClickHouseSettings connection details for a ClickHouse candle store
type ClickHouseSettings struct {
	Address  string `json:"address" mapstructure:"address"`
	Database string `json:"database" mapstructure:"database"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Table    string `json:"table" mapstructure:"table"`
}

// FeeSettings is the transaction cost model: a fixed charge per trade plus a
// proportional basis point charge on notional value, both deducted from cash
// at fill time
type FeeSettings struct {
	Fixed decimal.Decimal `json:"fixed" mapstructure:"fixed"`
	Bps   decimal.Decimal `json:"bps" mapstructure:"bps"`
}

// FillSettings configures how the execution handler prices fills
type FillSettings struct {
	Model               string          `json:"model" mapstructure:"model"`
	SlippagePercent     decimal.Decimal `json:"slippage-percent" mapstructure:"slippage-percent"`
	MaxParticipation    decimal.Decimal `json:"max-participation" mapstructure:"max-participation"`
	ParticipationPolicy string          `json:"participation-policy" mapstructure:"participation-policy"`
}

// PortfolioSettings configures sizing and cash handling
type PortfolioSettings struct {
	// MinTradeValue suppresses orders whose notional delta is below this,
	// avoiding churn from rounding noise
	MinTradeValue decimal.Decimal `json:"min-trade-value" mapstructure:"min-trade-value"`
	// CashPolicy is scale or reject; what to do with a buy that exceeds
	// available cash
	CashPolicy    string `json:"cash-policy" mapstructure:"cash-policy"`
	AllowShorting bool   `json:"allow-shorting" mapstructure:"allow-shorting"`
	// MaxWeight bounds the absolute target weight a strategy may emit
	MaxWeight decimal.Decimal `json:"max-weight" mapstructure:"max-weight"`
}

// StatisticSettings parameters for the performance analysis
type StatisticSettings struct {
	RiskFreeRate   decimal.Decimal `json:"risk-free-rate" mapstructure:"risk-free-rate"`
	PeriodsPerYear int64           `json:"periods-per-year" mapstructure:"periods-per-year"`
}

// Config defines a single backtest run
type Config struct {
	Nickname string `json:"nickname" mapstructure:"nickname"`
	Strategy string `json:"strategy" mapstructure:"strategy"`
	// StrategySettings are passed through to the strategy's custom settings
	// handler untouched
	StrategySettings map[string]interface{} `json:"strategy-settings" mapstructure:"strategy-settings"`
	Tickers          []string               `json:"tickers" mapstructure:"tickers"`
	StartDate        string                 `json:"start-date" mapstructure:"start-date"`
	EndDate          string                 `json:"end-date" mapstructure:"end-date"`
	InitialCash      decimal.Decimal        `json:"initial-cash" mapstructure:"initial-cash"`
	// WarmupBars of data before the start date are fed to the strategy
	// window so it is warm on day one, but no trading happens on them
	WarmupBars          int               `json:"warmup-bars" mapstructure:"warmup-bars"`
	RebalanceEveryNBars int               `json:"rebalance-every-n-bars" mapstructure:"rebalance-every-n-bars"`
	MaxStaleBars        int               `json:"max-stale-bars" mapstructure:"max-stale-bars"`
	Data                DataSettings      `json:"data" mapstructure:"data"`
	Fees                FeeSettings       `json:"fees" mapstructure:"fees"`
	Fill                FillSettings      `json:"fill" mapstructure:"fill"`
	Portfolio           PortfolioSettings `json:"portfolio" mapstructure:"portfolio"`
	Statistics          StatisticSettings `json:"statistics" mapstructure:"statistics"`
	Verbose             bool              `json:"verbose" mapstructure:"verbose"`

	start time.Time
	end   time.Time
}
