package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/fxpl/position"
)

const calcColumns = `calc_id, created_at, instrument, units, average_price, exit_price, profit_loss, pips, leverage, margin, account_pl, note`

type scanner interface {
	Scan(dest ...any) error
}

func scanCalc(s scanner) (Record, error) {
	var rec Record
	err := s.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Instrument,
		&rec.Units,
		&rec.AveragePrice,
		&rec.ExitPrice,
		&rec.ProfitLoss,
		&rec.Pips,
		&rec.Leverage,
		&rec.Margin,
		&rec.AccountPL,
		&rec.Note,
	)
	return rec, err
}

// GetCalc returns a single calculation by ID.
func (j *SQLite) GetCalc(calcID string) (Record, error) {
	row := j.db.QueryRow(`SELECT `+calcColumns+` FROM calcs WHERE calc_id = ?`, calcID)

	rec, err := scanCalc(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("%w: %q", ErrNotFound, calcID)
		}
		return Record{}, err
	}

	if rec.Entries, err = j.lots(rec.ID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ListCalcsBetween returns calculations created within [start, end), oldest first.
func (j *SQLite) ListCalcsBetween(start, end time.Time) ([]Record, error) {
	return j.list(`
		SELECT `+calcColumns+` FROM calcs
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at ASC, calc_id ASC`, start.UTC(), end.UTC())
}

// ListRecent returns the n most recent calculations, newest first.
func (j *SQLite) ListRecent(n int) ([]Record, error) {
	if n <= 0 {
		return nil, nil
	}
	return j.list(`
		SELECT `+calcColumns+` FROM calcs
		ORDER BY created_at DESC, calc_id DESC
		LIMIT ?`, n)
}

func (j *SQLite) list(query string, args ...any) ([]Record, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var out []Record
	for rows.Next() {
		rec, err := scanCalc(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range out {
		if out[i].Entries, err = j.lots(out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (j *SQLite) lots(calcID string) ([]position.EntryLot, error) {
	rows, err := j.db.Query(`
		SELECT price, units FROM calc_lots
		WHERE calc_id = ?
		ORDER BY seq ASC`, calcID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []position.EntryLot
	for rows.Next() {
		var lot position.EntryLot
		if err := rows.Scan(&lot.Price, &lot.Units); err != nil {
			return nil, err
		}
		out = append(out, lot)
	}
	return out, rows.Err()
}
