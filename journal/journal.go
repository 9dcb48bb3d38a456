// journal/journal.go
package journal

import (
	"errors"
	"time"

	"github.com/rustyeddy/fxpl/pkg/id"
	"github.com/rustyeddy/fxpl/position"
)

// ErrNotFound is returned when a calculation ID is not in the journal.
var ErrNotFound = errors.New("calculation not found")

// Record is one journaled position calculation.
type Record struct {
	ID         string
	CreatedAt  time.Time
	Instrument string
	Entries    []position.EntryLot

	Units        float64
	AveragePrice float64
	ExitPrice    float64
	ProfitLoss   float64
	Pips         float64
	Leverage     float64
	Margin       float64
	AccountPL    float64

	Note string
}

// NewRecord captures a summary and the lots it was computed from.
func NewRecord(entries []position.EntryLot, s position.Summary, note string, now time.Time) Record {
	lots := make([]position.EntryLot, len(entries))
	copy(lots, entries)

	return Record{
		ID:           id.NewAt(now),
		CreatedAt:    now.UTC(),
		Instrument:   s.Instrument,
		Entries:      lots,
		Units:        s.Units,
		AveragePrice: s.AveragePrice,
		ExitPrice:    s.ExitPrice,
		ProfitLoss:   s.ProfitLoss,
		Pips:         s.Pips,
		Leverage:     s.Leverage,
		Margin:       s.Margin,
		AccountPL:    s.AccountPL,
		Note:         note,
	}
}

type Journal interface {
	RecordCalc(Record) error
	Close() error
}
