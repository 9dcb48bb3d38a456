// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS calcs (
	calc_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	units REAL NOT NULL,
	average_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	profit_loss REAL NOT NULL,
	pips REAL NOT NULL,
	leverage REAL NOT NULL,
	margin REAL NOT NULL,
	account_pl REAL NOT NULL,
	note TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS calc_lots (
	calc_id TEXT NOT NULL REFERENCES calcs(calc_id) ON DELETE CASCADE,
	seq INTEGER NOT NULL,
	price REAL NOT NULL,
	units REAL NOT NULL,
	PRIMARY KEY (calc_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_calcs_created_at ON calcs(created_at);
`
