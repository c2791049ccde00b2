// Package bars provides the data.Handler implementation over a slice of
// OHLCV bars for a single ticker. Load validates that the core's input
// contract holds: bars sorted by timestamp with no duplicates.
package bars

import (
	"fmt"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/data"
	"github.com/quantfoundry/backtester/eventtypes/bar"
)

// DataFromBars is a data handler for a pre-loaded slice of bars
type DataFromBars struct {
	data.Base
	Ticker string
	Bars   []bar.Bar
}

// Load validates the raw bars and appends them to the stream as market
// events. Unsorted or duplicate timestamps abort the run; the core requires
// its input pre-sorted and de-duplicated by the data acquisition collaborator
func (d *DataFromBars) Load() error {
	if len(d.Bars) == 0 {
		return fmt.Errorf("%w for %v", data.ErrEmptyStream, d.Ticker)
	}
	events := make([]common.DataEvent, len(d.Bars))
	for i := range d.Bars {
		if i > 0 {
			prev := d.Bars[i-1].GetTime()
			curr := d.Bars[i].GetTime()
			if curr.Equal(prev) {
				return fmt.Errorf("%w: duplicate timestamp %v for %v",
					common.ErrInvalidData, curr, d.Ticker)
			}
			if curr.Before(prev) {
				return fmt.Errorf("%w: unsorted timestamp %v for %v",
					common.ErrInvalidData, curr, d.Ticker)
			}
		}
		d.Bars[i].Ticker = d.Ticker
		d.Bars[i].Offset = int64(i)
		events[i] = &d.Bars[i]
	}
	d.AppendStream(events...)
	return nil
}
