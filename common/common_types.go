package common

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Kind ranks event types for same-timestamp tie-breaking. Lower values are
// always processed first, which is what prevents look-ahead bias when a
// market bar, a signal and a fill share a timestamp.
type Kind uint8

const (
	KindMarket Kind = iota
	KindSignal
	KindOrder
	KindFill
)

// Side dictates the direction or outcome of an order
type Side string

const (
	// Buy and Sell are the two actionable directions
	Buy  Side = "BUY"
	Sell Side = "SELL"
	// DoNothing is an explicit signal for the backtester to not perform an
	// action based upon strategy results
	DoNothing Side = "DO NOTHING"
	// CouldNotBuy is flagged when a BUY is raised in the signal phase, but the
	// portfolio manager or execution handler cannot place the order
	CouldNotBuy Side = "COULD NOT BUY"
	// CouldNotSell is flagged when a SELL is raised in the signal phase, but
	// the portfolio manager or execution handler cannot place the order
	CouldNotSell Side = "COULD NOT SELL"
	// MissingData is flagged when price data for a ticker has gone stale
	// beyond tolerance and no order can be raised against it
	MissingData Side = "MISSING DATA"
)

// Status tags the outcome of an executed order in the trade log
type Status string

const (
	Filled          Status = "FILLED"
	PartiallyFilled Status = "PARTIALLY FILLED"
	Rejected        Status = "REJECTED"
)

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it
	// shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidData occurs when market data is missing, duplicated or
	// unsorted beyond tolerance. Aborts the run
	ErrInvalidData = errors.New("invalid market data")
	// ErrStrategyContract occurs when a strategy returns a malformed signal,
	// such as an unknown ticker or an out-of-bounds weight. Aborts the run
	ErrStrategyContract = errors.New("strategy contract violation")
	// ErrAccountingViolation occurs when cash goes negative or the equity
	// reconciliation cross-check fails. Always fatal, never clamped
	ErrAccountingViolation = errors.New("accounting violation")
)

// Event interface implements required GetTime() & GetTicker() returns along
// with the tie-break kind for queue ordering
type Event interface {
	GetOffset() int64
	SetOffset(int64)
	IsEvent() bool
	GetTime() time.Time
	GetTicker() string
	GetKind() Kind
	GetReason() string
	AppendReason(string)
}

// DataEvent interface is used for loading and interacting with market data
type DataEvent interface {
	Event
	GetOpenPrice() decimal.Decimal
	GetHighPrice() decimal.Decimal
	GetLowPrice() decimal.Decimal
	GetClosePrice() decimal.Decimal
	GetVolume() decimal.Decimal
	IsForwardFilled() bool
}

// Directioner dictates the side of an order
type Directioner interface {
	SetDirection(side Side)
	GetDirection() Side
}
