package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxpl/position"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func testRecord(t *testing.T, now time.Time, note string) Record {
	t.Helper()

	entries := []position.EntryLot{{Price: 1.1000, Units: 1000}, {Price: 1.2000, Units: 1000}}
	s, err := position.Summarize(position.Request{
		Instrument:  "EUR_USD",
		PipLocation: -4,
		Entries:     entries,
		ExitPrice:   1.3000,
		Leverage:    50,
	})
	require.NoError(t, err)

	return NewRecord(entries, s, note, now)
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('calcs','calc_lots')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["calcs"])
	assert.True(t, found["calc_lots"])
}

func TestSQLiteReopen(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	rec := testRecord(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "")
	require.NoError(t, j.RecordCalc(rec))
	require.NoError(t, j.Close())

	j2, err := NewSQLite(path)
	require.NoError(t, err)
	defer j2.Close()

	got, err := j2.GetCalc(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestSQLiteRecordCalc(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := testRecord(t, now, "scale-in test")

	require.NoError(t, j.RecordCalc(rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		calcID     string
		instrument string
		avg        float64
		pl         float64
		createdAt  time.Time
		lots       int
	)

	err = db.QueryRow(`
        SELECT calc_id, instrument, average_price, profit_loss, created_at
        FROM calcs LIMIT 1`).Scan(&calcID, &instrument, &avg, &pl, &createdAt)
	require.NoError(t, err)

	assert.Equal(t, rec.ID, calcID)
	assert.Equal(t, "EUR_USD", instrument)
	assert.InDelta(t, 1.15, avg, 1e-9)
	assert.InDelta(t, 300.0, pl, 1e-6)
	assert.True(t, createdAt.Equal(now))

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM calc_lots WHERE calc_id = ?`, calcID).Scan(&lots))
	assert.Equal(t, 2, lots)
}

func TestSQLiteRecordCalcDuplicateRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	rec := testRecord(t, time.Now(), "")
	require.NoError(t, j.RecordCalc(rec))

	dup := rec
	dup.Entries = append(dup.Entries, position.EntryLot{Price: 1.3, Units: 1})
	assert.Error(t, j.RecordCalc(dup))

	got, err := j.GetCalc(rec.ID)
	require.NoError(t, err)
	assert.Len(t, got.Entries, 2)
}
