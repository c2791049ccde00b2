// Package eventholder contains the chronological event queue for backtest
// processing. Events pop in non-decreasing timestamp order; events sharing a
// timestamp pop in kind order, market data before signals before orders
// before fills, with insertion order breaking any remaining ties. This fixed
// ordering is what makes a run reproducible and free of look-ahead bias.
package eventholder

import (
	"github.com/quantfoundry/backtester/common"
)

// Holder contains the event queue for backtester processing
type Holder struct {
	queue []entry
	seq   int64
}

type entry struct {
	event common.Event
	seq   int64
}

// EventHolder interface details what is expected of an event holder to
// perform
type EventHolder interface {
	Reset()
	AppendEvent(common.Event)
	NextEvent() common.Event
	Len() int
}
