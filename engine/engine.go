package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/config"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/data/bars"
	"github.com/quantfoundry/backtester/data/bars/clickhouse"
	"github.com/quantfoundry/backtester/data/bars/csv"
	"github.com/quantfoundry/backtester/eventholder"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
	"github.com/quantfoundry/backtester/eventtypes/order"
	"github.com/quantfoundry/backtester/eventtypes/signal"
	"github.com/quantfoundry/backtester/exchange"
	"github.com/quantfoundry/backtester/portfolio"
	"github.com/quantfoundry/backtester/portfolio/compliance"
	"github.com/quantfoundry/backtester/portfolio/holdings"
	"github.com/quantfoundry/backtester/portfolio/size"
	"github.com/quantfoundry/backtester/statistics"
	"github.com/quantfoundry/backtester/strategies"
)

// NewFromConfig assembles a ready-to-run backtest: strategy loaded, data
// streamed in and validated, portfolio seeded and execution handler wired
func NewFromConfig(ctx context.Context, cfg *config.Config, l *zap.SugaredLogger) (*BackTest, error) {
	if cfg == nil {
		return nil, common.ErrNilArguments
	}
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	strat, err := strategies.LoadStrategyByName(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	if len(cfg.StrategySettings) > 0 {
		if err = strat.SetCustomSettings(cfg.StrategySettings); err != nil {
			return nil, err
		}
	}

	warmup := cfg.WarmupBars
	if strat.WarmupPeriods() > warmup {
		warmup = strat.WarmupPeriods()
	}

	datas, err := loadData(ctx, cfg, warmup)
	if err != nil {
		return nil, err
	}

	p, err := portfolio.Setup(&size.Size{
		MinTradeValue: cfg.Portfolio.MinTradeValue,
		AllowShorting: cfg.Portfolio.AllowShorting,
	}, cfg.MaxStaleBars, l)
	if err != nil {
		return nil, err
	}
	if err = p.Seed(cfg.InitialCash); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	return &BackTest{
		RunID: id,
		cfg:   cfg,
		queue: &eventholder.Holder{},
		datas: datas,
		exchange: exchange.Setup(exchange.Settings{
			FeeFixed:            cfg.Fees.Fixed,
			FeeBps:              cfg.Fees.Bps,
			Model:               cfg.Fill.Model,
			SlippagePercent:     cfg.Fill.SlippagePercent,
			MaxParticipation:    cfg.Fill.MaxParticipation,
			ParticipationPolicy: cfg.Fill.ParticipationPolicy,
			CashPolicy:          cfg.Portfolio.CashPolicy,
		}, l),
		portfolio: p,
		strategy:  strat,
		warmup:    warmup,
		log:       l,
	}, nil
}

// loadData builds one loaded data handler per configured ticker, trimmed to
// the run's date range plus the warmup prefix
func loadData(ctx context.Context, cfg *config.Config, warmup int) (*data.HandlerPerTicker, error) {
	resp := &data.HandlerPerTicker{}
	switch cfg.Data.Source {
	case config.DataSourceCSV:
		for _, ticker := range cfg.Tickers {
			h, err := csv.LoadData(filepath.Join(cfg.Data.Directory, ticker+".csv"), ticker)
			if err != nil {
				return nil, err
			}
			if err = loadTrimmed(resp, h, cfg, warmup); err != nil {
				return nil, err
			}
		}
	case config.DataSourceClickHouse:
		source, err := clickhouse.Connect(&clickhouse.Config{
			Address:  cfg.Data.ClickHouse.Address,
			Database: cfg.Data.ClickHouse.Database,
			Username: cfg.Data.ClickHouse.Username,
			Password: cfg.Data.ClickHouse.Password,
			Table:    cfg.Data.ClickHouse.Table,
		})
		if err != nil {
			return nil, err
		}
		defer source.Close()
		// calendar padding so enough pre-start bars arrive to cover warmup
		padded := cfg.Start().AddDate(0, 0, -warmup*2-7)
		for _, ticker := range cfg.Tickers {
			h, err := source.LoadData(ctx, ticker, padded, cfg.End())
			if err != nil {
				return nil, err
			}
			if err = loadTrimmed(resp, h, cfg, warmup); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown data source: %v", cfg.Data.Source)
	}
	return resp, nil
}

func loadTrimmed(holder *data.HandlerPerTicker, h *bars.DataFromBars, cfg *config.Config, warmup int) error {
	h.Bars = trimBars(h.Bars, cfg.Start(), cfg.End(), warmup)
	if len(h.Bars) == 0 {
		return fmt.Errorf("%w for %v", errNoDataForRun, h.Ticker)
	}
	if err := h.Load(); err != nil {
		return err
	}
	holder.SetDataForTicker(h.Ticker, h)
	return nil
}

// trimBars keeps the bars inside [start, end] plus up to warmup bars
// immediately before start
func trimBars(b []bar.Bar, start, end time.Time, warmup int) []bar.Bar {
	first := 0
	for first < len(b) && b[first].GetTime().Before(start) {
		first++
	}
	last := len(b)
	for last > 0 && b[last-1].GetTime().After(end) {
		last--
	}
	first -= warmup
	if first < 0 {
		first = 0
	}
	if first > last {
		return nil
	}
	return b[first:last]
}

// Run processes the event queue until every data stream is exhausted, then
// finalizes the portfolio and calculates results. Any returned error means
// the run aborted and its partial state is not to be trusted
func (bt *BackTest) Run() error {
	if bt.hasRun {
		return errAlreadyRan
	}
	bt.hasRun = true
	bt.log.Infow("starting backtest",
		"run", bt.cfg.Nickname,
		"id", bt.RunID,
		"strategy", bt.strategy.Name(),
		"tickers", bt.cfg.Tickers)
	for {
		ev := bt.queue.NextEvent()
		if ev == nil {
			if bt.step > int64(bt.warmup) {
				err := bt.portfolio.SnapshotEquity(bt.currentTime, bt.step-int64(bt.warmup)-1)
				if err != nil {
					return err
				}
			}
			if !bt.appendNextStep() {
				break
			}
			continue
		}
		if err := bt.handleEvent(ev); err != nil {
			return err
		}
	}
	return bt.finalise()
}

// appendNextStep advances the simulation clock to the earliest unstreamed
// timestamp and queues one market event per ticker, forward-filling tickers
// that have no bar at that timestamp from their last known close. Returns
// false when every stream is exhausted
func (bt *BackTest) appendNextStep() bool {
	tickers := bt.datas.Tickers()
	var next time.Time
	found := false
	for _, ticker := range tickers {
		h, err := bt.datas.GetDataForTicker(ticker)
		if err != nil {
			continue
		}
		if t, ok := h.PeekTime(); ok && (!found || t.Before(next)) {
			next = t
			found = true
		}
	}
	if !found {
		return false
	}
	bt.step++
	bt.currentTime = next
	for _, ticker := range tickers {
		h, err := bt.datas.GetDataForTicker(ticker)
		if err != nil {
			continue
		}
		if t, ok := h.PeekTime(); ok && t.Equal(next) {
			bt.queue.AppendEvent(h.Next())
			bt.pendingBars++
			continue
		}
		latest := h.Latest()
		if latest == nil {
			// ticker's data starts later, nothing to forward fill from
			continue
		}
		lastClose := latest.GetClosePrice()
		bt.queue.AppendEvent(&bar.Bar{
			Base: event.Base{
				Ticker: ticker,
				Time:   next,
				Offset: latest.GetOffset(),
				Reason: "forward filled from last close",
			},
			Open:          lastClose,
			High:          lastClose,
			Low:           lastClose,
			Close:         lastClose,
			Volume:        decimal.Zero,
			ForwardFilled: true,
		})
		bt.pendingBars++
	}
	return true
}

func (bt *BackTest) handleEvent(ev common.Event) error {
	switch e := ev.(type) {
	case common.DataEvent:
		return bt.processDataEvent(e)
	case signal.Event:
		return bt.processSignalEvent(e)
	case order.Event:
		return bt.processOrderEvent(e)
	default:
		return fmt.Errorf("%w: %T", errUnknownEvent, ev)
	}
}

// processDataEvent marks the portfolio and, once every bar of the current
// timestamp has been seen, gives the strategy its chance to act
func (bt *BackTest) processDataEvent(e common.DataEvent) error {
	if err := bt.portfolio.OnBar(e); err != nil {
		return err
	}
	bt.pendingBars--
	if bt.pendingBars > 0 {
		return nil
	}
	return bt.maybeSignal()
}

// maybeSignal runs the strategy when the current step is past warmup and on
// the rebalance cadence. Strategy output is validated against the contract
// before it becomes a signal event
func (bt *BackTest) maybeSignal() error {
	if bt.step <= int64(bt.warmup) {
		return nil
	}
	if (bt.step-int64(bt.warmup)-1)%int64(bt.cfg.RebalanceEveryNBars) != 0 {
		return nil
	}
	tickers := bt.datas.Tickers()
	handlers := make([]data.Handler, 0, len(tickers))
	for _, ticker := range tickers {
		h, err := bt.datas.GetDataForTicker(ticker)
		if err != nil {
			return err
		}
		if h.Latest() == nil {
			continue
		}
		handlers = append(handlers, h)
	}
	if len(handlers) == 0 {
		return nil
	}
	weights, err := bt.strategy.OnData(handlers)
	if err != nil {
		return err
	}
	if weights == nil {
		return nil
	}
	if err = bt.validateWeights(weights); err != nil {
		return err
	}
	bt.queue.AppendEvent(&signal.Signal{
		Base: event.Base{
			Time:   bt.currentTime,
			Offset: bt.step - int64(bt.warmup) - 1,
		},
		Weights: weights,
	})
	return nil
}

// validateWeights enforces the strategy contract: weights only for known
// tickers, each within the configured bound. A violation aborts the run.
// Weights need not sum to one; over-allocation is constrained downstream by
// the sell-first ordering and the configured cash policy
func (bt *BackTest) validateWeights(weights map[string]decimal.Decimal) error {
	tickers := make([]string, 0, len(weights))
	for ticker := range weights {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	for _, ticker := range tickers {
		w := weights[ticker]
		if _, err := bt.datas.GetDataForTicker(ticker); err != nil {
			return fmt.Errorf("%w: weight for unknown ticker %v",
				common.ErrStrategyContract, ticker)
		}
		if w.Abs().GreaterThan(bt.cfg.Portfolio.MaxWeight) {
			return fmt.Errorf("%w: weight %v for %v exceeds bound %v",
				common.ErrStrategyContract, w, ticker, bt.cfg.Portfolio.MaxWeight)
		}
	}
	return nil
}

func (bt *BackTest) processSignalEvent(e signal.Event) error {
	orders, err := bt.portfolio.OnSignal(e)
	if err != nil {
		return err
	}
	for i := range orders {
		bt.queue.AppendEvent(orders[i])
	}
	return nil
}

// processOrderEvent executes an order against the ticker's following bar and
// applies the resulting fill immediately, so that sale proceeds from earlier
// orders in the same step are available to later buys
func (bt *BackTest) processOrderEvent(e order.Event) error {
	h, err := bt.datas.GetDataForTicker(e.GetTicker())
	if err != nil {
		return err
	}
	f, err := bt.exchange.ExecuteOrder(e, h.Peek(), bt.portfolio.Cash())
	if err != nil {
		return err
	}
	return bt.portfolio.OnFill(f)
}

func (bt *BackTest) finalise() error {
	if err := bt.portfolio.Finalise(); err != nil {
		return err
	}
	curve, err := bt.portfolio.EquityCurve()
	if err != nil {
		return err
	}
	trades, err := bt.portfolio.TradeLog()
	if err != nil {
		return err
	}
	bt.results, err = statistics.CalculateResults(curve, trades,
		bt.cfg.Statistics.RiskFreeRate, bt.cfg.Statistics.PeriodsPerYear)
	if err != nil {
		return err
	}
	bt.log.Infow("backtest complete",
		"run", bt.cfg.Nickname,
		"id", bt.RunID,
		"final-value", bt.results.FinalValue)
	return nil
}

// Results returns the performance metrics of a completed run
func (bt *BackTest) Results() (*statistics.Results, error) {
	if bt.results == nil {
		return nil, errNotRun
	}
	return bt.results, nil
}

// EquityCurve returns the completed run's equity curve
func (bt *BackTest) EquityCurve() ([]holdings.Holding, error) {
	return bt.portfolio.EquityCurve()
}

// TradeLog returns the completed run's trade log
func (bt *BackTest) TradeLog() ([]compliance.Record, error) {
	return bt.portfolio.TradeLog()
}
