// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"calc_id", "created_at", "instrument", "entries", "units", "average_price",
	"exit_price", "profit_loss", "pips", "leverage", "margin", "account_pl", "note",
}

type CSV struct {
	w  *csv.Writer
	fh *os.File
}

// NewCSV opens path for appending, creating it if needed. The header row is
// written only when the file is empty.
func NewCSV(path string) (*CSV, error) {
	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	w := csv.NewWriter(fh)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = fh.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = fh.Close()
			return nil, err
		}
	}

	return &CSV{w: w, fh: fh}, nil
}

func (j *CSV) RecordCalc(r Record) error {
	lots := make([]string, len(r.Entries))
	for i, lot := range r.Entries {
		lots[i] = lot.String()
	}

	err := j.w.Write([]string{
		r.ID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.Instrument,
		strings.Join(lots, ";"),
		f(r.Units),
		f(r.AveragePrice),
		f(r.ExitPrice),
		f(r.ProfitLoss),
		f(r.Pips),
		f(r.Leverage),
		f(r.Margin),
		f(r.AccountPL),
		r.Note,
	})
	if err != nil {
		return err
	}

	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.fh.Close()
		return err
	}
	return j.fh.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
