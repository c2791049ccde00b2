package engine

import (
	"context"
	"sync"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/quantfoundry/backtester/config"
	"github.com/quantfoundry/backtester/statistics"
)

// RunReport is the outcome of one run within a batch
type RunReport struct {
	Nickname string              `json:"nickname"`
	RunID    uuid.UUID           `json:"run-id"`
	Results  *statistics.Results `json:"results,omitempty"`
	Err      error               `json:"-"`
}

// RunAll executes every configured run concurrently. Runs share nothing, so
// each is as deterministic in a batch as it is alone; reports come back in
// config order regardless of completion order
func RunAll(ctx context.Context, cfgs []*config.Config, l *zap.SugaredLogger) []RunReport {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	reports := make([]RunReport, len(cfgs))
	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reports[i] = runOne(ctx, cfgs[i], l)
		}(i)
	}
	wg.Wait()
	return reports
}

func runOne(ctx context.Context, cfg *config.Config, l *zap.SugaredLogger) RunReport {
	report := RunReport{Nickname: cfg.Nickname}
	bt, err := NewFromConfig(ctx, cfg, l)
	if err != nil {
		report.Err = err
		return report
	}
	report.RunID = bt.RunID
	if err = bt.Run(); err != nil {
		report.Err = err
		return report
	}
	report.Results, report.Err = bt.Results()
	return report
}
