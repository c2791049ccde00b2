// Package compliance keeps the append-only trade log. Every executed,
// partially executed or rejected order lands here with its outcome tag so a
// run can be audited after the fact.
package compliance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantfoundry/backtester/common"
)

// Record details the outcome of one order
type Record struct {
	Timestamp time.Time       `json:"timestamp"`
	Ticker    string          `json:"ticker"`
	OrderID   string          `json:"order-id"`
	Direction common.Side     `json:"direction"`
	Status    common.Status   `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
	// RealizedPnL is set on position-reducing fills, measured against the
	// position's average cost
	RealizedPnL decimal.Decimal `json:"realized-pnl"`
	Reason      string          `json:"reason"`
}

// Manager holds the trade log for a run
type Manager struct {
	records []Record
}

// AddRecord appends an outcome to the trade log
func (m *Manager) AddRecord(r Record) {
	m.records = append(m.records, r)
}

// Records returns a copy of the trade log
func (m *Manager) Records() []Record {
	resp := make([]Record, len(m.records))
	copy(resp, m.records)
	return resp
}

// Reset returns the manager to defaults
func (m *Manager) Reset() {
	m.records = nil
}
