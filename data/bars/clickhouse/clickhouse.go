// Package clickhouse loads daily bar data from a ClickHouse candles table,
// for setups where the data acquisition collaborator ingests vendor data
// into ClickHouse rather than flat files.
package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/data/bars"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

// Config holds the connection and table details for the candle store
type Config struct {
	Address  string `json:"address"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	Table    string `json:"table"`
}

// Source wraps a ClickHouse connection for bar retrieval
type Source struct {
	conn  driver.Conn
	table string
}

// Connect opens a connection to ClickHouse and verifies it
func Connect(cfg *Config) (*Source, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Address},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	if err = conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}
	return &Source{conn: conn, table: cfg.Table}, nil
}

// Close releases the underlying connection
func (s *Source) Close() error {
	return s.conn.Close()
}

// LoadData retrieves daily bars for a ticker over the provided range,
// ordered by timestamp, and returns an unloaded data handler
func (s *Source) LoadData(ctx context.Context, ticker string, start, end time.Time) (*bars.DataFromBars, error) {
	query := fmt.Sprintf(
		"SELECT timestamp, open, high, low, close, volume FROM %s "+
			"WHERE ticker = ? AND timestamp >= ? AND timestamp <= ? "+
			"ORDER BY timestamp ASC", s.table)
	rows, err := s.conn.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("could not query bars for %v: %w", ticker, err)
	}
	defer rows.Close()

	resp := &bars.DataFromBars{Ticker: ticker}
	for rows.Next() {
		var (
			ts                           time.Time
			open, high, low, closep, vol float64
		)
		if err = rows.Scan(&ts, &open, &high, &low, &closep, &vol); err != nil {
			return nil, fmt.Errorf("could not scan bar for %v: %w", ticker, err)
		}
		resp.Bars = append(resp.Bars, bar.Bar{
			Base:   event.Base{Time: ts.UTC()},
			Open:   decimal.NewFromFloat(open),
			High:   decimal.NewFromFloat(high),
			Low:    decimal.NewFromFloat(low),
			Close:  decimal.NewFromFloat(closep),
			Volume: decimal.NewFromFloat(vol),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return resp, nil
}
