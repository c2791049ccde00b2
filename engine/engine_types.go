// Package engine owns the simulation loop. It streams market data through
// the ordered event queue, asks the strategy for target weights, turns those
// into orders and fills, and hands the finalized equity curve to the
// statistics package. One engine instance drives exactly one run.
package engine

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/config"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/eventholder"
	"github.com/quantfoundry/backtester/exchange"
	"github.com/quantfoundry/backtester/portfolio"
	"github.com/quantfoundry/backtester/statistics"
	"github.com/quantfoundry/backtester/strategies"
)

var (
	errAlreadyRan   = errors.New("backtest has already run")
	errNotRun       = errors.New("backtest has not run")
	errNoDataForRun = errors.New("no data in the configured date range")
	errUnknownEvent = errors.New("unhandled event type")
)

// BackTest is the driver of a single simulation
type BackTest struct {
	// RunID identifies the run in logs, never in results
	RunID     uuid.UUID
	cfg       *config.Config
	queue     *eventholder.Holder
	datas     *data.HandlerPerTicker
	portfolio *portfolio.Portfolio
	exchange  exchange.ExecutionHandler
	strategy  strategies.Handler
	log       *zap.SugaredLogger

	// currentTime is the timestamp of the grid step being processed
	currentTime time.Time
	// step counts processed grid timestamps, starting at 1
	step int64
	// warmup is the greater of the configured warmup and what the strategy
	// itself requires
	warmup int
	// pendingBars counts market events of the current step still unprocessed;
	// the strategy runs when it reaches zero
	pendingBars int

	hasRun  bool
	results *statistics.Results
}
