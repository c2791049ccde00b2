package eventholder

import (
	"testing"
	"time"

	"github.com/quantfoundry/backtester/common"
	"github.com/quantfoundry/backtester/eventtypes/bar"
	"github.com/quantfoundry/backtester/eventtypes/event"
	"github.com/quantfoundry/backtester/eventtypes/fill"
	"github.com/quantfoundry/backtester/eventtypes/order"
	"github.com/quantfoundry/backtester/eventtypes/signal"
)

func TestNextEventEmpty(t *testing.T) {
	t.Parallel()
	h := &Holder{}
	if e := h.NextEvent(); e != nil {
		t.Errorf("received: %v, expected: %v", e, nil)
	}
}

func TestKindTieBreak(t *testing.T) {
	t.Parallel()
	tt := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	h := &Holder{}
	// append out of kind order on the same timestamp
	h.AppendEvent(&fill.Fill{Base: event.Base{Time: tt, Ticker: "AAPL"}})
	h.AppendEvent(&order.Order{Base: event.Base{Time: tt, Ticker: "AAPL"}})
	h.AppendEvent(&signal.Signal{Base: event.Base{Time: tt, Ticker: "AAPL"}})
	h.AppendEvent(&bar.Bar{Base: event.Base{Time: tt, Ticker: "AAPL"}})

	expected := []common.Kind{common.KindMarket, common.KindSignal, common.KindOrder, common.KindFill}
	for i := range expected {
		e := h.NextEvent()
		if e == nil {
			t.Fatal("expected event")
		}
		if e.GetKind() != expected[i] {
			t.Errorf("received: %v, expected: %v", e.GetKind(), expected[i])
		}
	}
}

func TestTimestampOrdering(t *testing.T) {
	t.Parallel()
	h := &Holder{}
	t1 := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 0, 1)
	h.AppendEvent(&bar.Bar{Base: event.Base{Time: t2, Ticker: "MSFT"}})
	h.AppendEvent(&bar.Bar{Base: event.Base{Time: t1, Ticker: "AAPL"}})
	e := h.NextEvent()
	if !e.GetTime().Equal(t1) {
		t.Errorf("received: %v, expected: %v", e.GetTime(), t1)
	}
	e = h.NextEvent()
	if !e.GetTime().Equal(t2) {
		t.Errorf("received: %v, expected: %v", e.GetTime(), t2)
	}
}

func TestInsertionOrderStable(t *testing.T) {
	t.Parallel()
	h := &Holder{}
	tt := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	h.AppendEvent(&bar.Bar{Base: event.Base{Time: tt, Ticker: "AAPL"}})
	h.AppendEvent(&bar.Bar{Base: event.Base{Time: tt, Ticker: "MSFT"}})
	if e := h.NextEvent(); e.GetTicker() != "AAPL" {
		t.Errorf("received: %v, expected: %v", e.GetTicker(), "AAPL")
	}
	if e := h.NextEvent(); e.GetTicker() != "MSFT" {
		t.Errorf("received: %v, expected: %v", e.GetTicker(), "MSFT")
	}
	if h.Len() != 0 {
		t.Errorf("received: %v, expected: %v", h.Len(), 0)
	}
}
