// Package exchange is the execution handler. It receives orders raised
// against the current bar's close and decides what actually happens to them
// using only the following bar: the fill price comes from that bar's open
// adjusted by the configured price model, fees are charged on the executed
// notional and execution constraints shrink or reject the order with a tagged
// outcome rather than an error.
package exchange

import (
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/fill"
	"github.com/quantfoundry/backtester/eventtypes/order"
)

var (
	errUnknownFillModel = errors.New("unknown fill model")
	errZeroFillPrice    = errors.New("fill price must be positive")
)

// ExecutionHandler is the interface between an order and its outcome
type ExecutionHandler interface {
	ExecuteOrder(o order.Event, nextBar common.DataEvent, availableCash decimal.Decimal) (*fill.Fill, error)
}

// Settings configure an execution handler
type Settings struct {
	// FeeFixed is charged once per executed trade
	FeeFixed decimal.Decimal
	// FeeBps is charged on the executed notional, in basis points
	FeeBps decimal.Decimal
	// Model decides the fill price from the next bar
	Model string
	// SlippagePercent worsens the open by this much under the slippage model
	SlippagePercent decimal.Decimal
	// MaxParticipation caps the executed amount at this fraction of the next
	// bar's volume. Zero disables the cap
	MaxParticipation decimal.Decimal
	// ParticipationPolicy is partial or reject for orders over the cap
	ParticipationPolicy string
	// CashPolicy is scale or reject for buys that exceed available cash
	CashPolicy string
}

// Exchange applies fill pricing, fees and execution constraints to orders
type Exchange struct {
	cfg Settings
	log *zap.SugaredLogger
}
