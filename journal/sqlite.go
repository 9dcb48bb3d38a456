package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// RecordCalc stores r and its lots in a single transaction.
func (j *SQLite) RecordCalc(r Record) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO calcs
		(calc_id, created_at, instrument, units, average_price, exit_price, profit_loss, pips, leverage, margin, account_pl, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC(), r.Instrument, r.Units, r.AveragePrice, r.ExitPrice,
		r.ProfitLoss, r.Pips, r.Leverage, r.Margin, r.AccountPL, r.Note,
	)
	if err != nil {
		return fmt.Errorf("insert calc %s: %w", r.ID, err)
	}

	for i, lot := range r.Entries {
		_, err = tx.Exec(`
			INSERT INTO calc_lots (calc_id, seq, price, units)
			VALUES (?, ?, ?, ?)`,
			r.ID, i, lot.Price, lot.Units,
		)
		if err != nil {
			return fmt.Errorf("insert lot %d of %s: %w", i, r.ID, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
