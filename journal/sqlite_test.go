package journal

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = 'trades'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteSaveAndGet(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	want := Trade{
		ID:         "T123",
		Date:       "2024-04-10",
		Time:       "09:41",
		Side:       Short,
		Instrument: "ES!",
		Result:     Win,
		RiskReward: 1.75,
		ProfitLoss: Float(375),
		Notes:      "faded the open",
	}
	require.NoError(t, j.Save(want))

	got, err := j.Get("T123")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteAbsentPnL(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, j.Save(Trade{ID: "T1", Date: "2024-04-10", Time: "09:41", Side: Long, Instrument: "NQ!", Result: Loss, RiskReward: -1}))

	got, err := j.Get("T1")
	require.NoError(t, err)
	assert.Nil(t, got.ProfitLoss)
	assert.Equal(t, 0.0, got.PnL())
}

func TestSQLiteGetNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.Get("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, j.Delete("nonexistent"), ErrNotFound)
}

func TestSQLiteListKeepsEntryOrderAcrossEdits(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, j.Save(Trade{ID: id, Date: "2024-01-02", Time: "10:00", Side: Long, Instrument: "NQ!", Result: Win, RiskReward: 1}))
	}

	// An edit replaces the record wholesale but keeps its position.
	require.NoError(t, j.Save(Trade{ID: "C", Date: "2024-01-03", Time: "11:00", Side: Short, Instrument: "ES!", Result: Loss, RiskReward: -1}))

	trades, err := j.List()
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "C", trades[0].ID)
	assert.Equal(t, "ES!", trades[0].Instrument)
	assert.Equal(t, Loss, trades[0].Result)
	assert.Equal(t, "A", trades[1].ID)
	assert.Equal(t, "B", trades[2].ID)

	require.NoError(t, j.Delete("A"))
	trades, err = j.List()
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}

func TestSQLiteSaveAll(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	batch := []Trade{
		{ID: "A", Date: "2024-01-02", Time: "09:35", Side: Long, Instrument: "NQ!", Result: Win, RiskReward: 2},
		{ID: "B", Date: "2024-01-02", Time: "09:50", Side: Short, Instrument: "NQ!", Result: Loss, RiskReward: -1},
	}
	require.NoError(t, j.SaveAll(batch))

	trades, err := j.List()
	require.NoError(t, err)
	assert.Len(t, trades, 2)
}

func TestSQLiteSaveAllIsAtomic(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	require.NoError(t, j.Save(Trade{ID: "A", Date: "2024-01-02", Time: "09:35", Side: Long, Instrument: "NQ!", Result: Win, RiskReward: 2}))

	batch := []Trade{
		{ID: "A", Date: "2024-01-05", Time: "10:05", Side: Short, Instrument: "ES!", Result: Loss, RiskReward: -1},
		{ID: "B", Date: "2024-01-05", Time: "10:20", Side: Long, Instrument: "ES!", Result: Win, RiskReward: 1},
		{ID: "C", Date: "2024-01-05", Time: "10:40", Side: Long, Instrument: "ES!", Result: "draw", RiskReward: 0},
	}
	err := j.SaveAll(batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save trade C")

	trades, err := j.List()
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "NQ!", trades[0].Instrument, "edit in a failed batch must roll back")
}

func TestSQLiteListEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	trades, err := j.List()
	require.NoError(t, err)
	assert.NotNil(t, trades)
	assert.Empty(t, trades)
}
