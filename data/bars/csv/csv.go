// Package csv loads daily bar data for a ticker from a local CSV file with
// the header date,open,high,low,close,volume.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/data/bars"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
)

const dateLayout = "2006-01-02"

// LoadData reads a CSV of daily bars and returns an unloaded data handler
// for the ticker
func LoadData(path, ticker string) (*bars.DataFromBars, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not read data for %v %w", ticker, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse data for %v %w", ticker, err)
	}

	resp := &bars.DataFromBars{Ticker: ticker}
	for i := range records {
		if i == 0 && strings.EqualFold(records[i][0], "date") {
			continue
		}
		b, err := parseRecord(records[i])
		if err != nil {
			return nil, fmt.Errorf("%v line %v: %w", path, i+1, err)
		}
		resp.Bars = append(resp.Bars, b)
	}
	return resp, nil
}

func parseRecord(record []string) (bar.Bar, error) {
	if len(record) < 6 {
		return bar.Bar{}, fmt.Errorf("expected 6 fields, received %v", len(record))
	}
	t, err := time.Parse(dateLayout, record[0])
	if err != nil {
		return bar.Bar{}, err
	}
	fields := make([]decimal.Decimal, 5)
	for i := range fields {
		fields[i], err = decimal.NewFromString(record[i+1])
		if err != nil {
			return bar.Bar{}, err
		}
	}
	return bar.Bar{
		Base:   event.Base{Time: t.UTC()},
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}
