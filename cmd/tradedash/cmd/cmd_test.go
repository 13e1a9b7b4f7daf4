package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/tradedash/analytics"
	"github.com/rustyeddy/tradedash/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 10, 16, 0, 0, 0, time.Local)

// run executes the CLI against db and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd(&app{now: func() time.Time { return testNow }})
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", db}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()

	out, err := run(t, db, args...)
	require.NoError(t, err, "tradedash %s", strings.Join(args, " "))
	return out
}

func seedDB(t *testing.T) string {
	t.Helper()

	db := filepath.Join(t.TempDir(), "journal.sqlite")
	j, err := journal.NewSQLite(db)
	require.NoError(t, err)
	defer j.Close()

	for _, tr := range []journal.Trade{
		{ID: "T1", Date: "2024-01-02", Time: "09:35", Side: journal.Long, Instrument: "NQ!", Result: journal.Win, RiskReward: 2, ProfitLoss: journal.Float(400)},
		{ID: "T2", Date: "2024-01-03", Time: "10:40", Side: journal.Short, Instrument: "ES!", Result: journal.Loss, RiskReward: -1, ProfitLoss: journal.Float(-150)},
		{ID: "T3", Date: "2023-12-28", Time: "09:50", Side: journal.Long, Instrument: "NQ!", Result: journal.Win, RiskReward: 1.5, ProfitLoss: journal.Float(300)},
	} {
		require.NoError(t, j.Save(tr))
	}
	return db
}

func TestTradeAddAndShow(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "journal.sqlite")

	out := mustRun(t, db, "trade", "add",
		"--time", "9:41", "--side", "SHORT", "--instrument", " CL! ",
		"--result", "loss", "--rr", "2", "--pl", "85", "--notes", "chased the open")
	require.True(t, strings.HasPrefix(out, "✓ Added trade "))
	id := strings.TrimSpace(strings.TrimPrefix(out, "✓ Added trade "))

	j, err := journal.NewSQLite(db)
	require.NoError(t, err)
	got, err := j.Get(id)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	// default policy is strict
	assert.Equal(t, "2024-01-10", got.Date)
	assert.Equal(t, journal.Short, got.Side)
	assert.Equal(t, "CL!", got.Instrument)
	assert.Equal(t, -1.0, got.RiskReward)
	require.NotNil(t, got.ProfitLoss)
	assert.Equal(t, -85.0, *got.ProfitLoss)

	out = mustRun(t, db, "trade", "show", id)
	assert.Contains(t, out, ":INSTRUMENT: CL!")
	assert.Contains(t, out, "chased the open")
}

func TestTradeAddInvalid(t *testing.T) {
	t.Parallel()

	db := filepath.Join(t.TempDir(), "journal.sqlite")

	_, err := run(t, db, "trade", "add", "--time", "09:41", "--side", "sideways", "--instrument", "NQ!", "--result", "win")
	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrInvalidTrade)

	_, err = run(t, db, "trade", "add", "--time", "09:41", "--side", "long", "--instrument", "NQ!", "--result", "win", "--pl", "lots")
	assert.Error(t, err)

	_, err = run(t, db, "trade", "add", "--side", "long")
	assert.Error(t, err)
}

func TestTradeListAndRemove(t *testing.T) {
	t.Parallel()

	db := seedDB(t)

	out := mustRun(t, db, "trade", "list", "--range", "all-time", "--instrument", "NQ!")
	assert.Contains(t, out, "T1")
	assert.Contains(t, out, "T3")
	assert.NotContains(t, out, "T2")

	// month-to-date from config defaults
	out = mustRun(t, db, "trade", "list")
	assert.Contains(t, out, "T1")
	assert.NotContains(t, out, "T3")

	out = mustRun(t, db, "trade", "list", "--range", "all-time", "--weekday", "wednesday")
	assert.Contains(t, out, "T2")
	assert.NotContains(t, out, "T1")

	out = mustRun(t, db, "trade", "list", "--range", "last-30-days")
	assert.Contains(t, out, "T1")
	assert.Contains(t, out, "T3")

	out = mustRun(t, db, "trade", "list", "--range", "all-time", "--bucket", "10:30+")
	assert.Contains(t, out, "T2")
	assert.NotContains(t, out, "T1")

	_, err := run(t, db, "trade", "list", "--bucket", "9:30")
	assert.ErrorIs(t, err, analytics.ErrInvalidFilter)

	_, err = run(t, db, "trade", "list", "--weekday", "Funday")
	assert.ErrorIs(t, err, analytics.ErrInvalidFilter)

	_, err = run(t, db, "trade", "list", "--range", "forever")
	assert.ErrorIs(t, err, analytics.ErrUnknownPreset)

	out = mustRun(t, db, "trade", "rm", "T2")
	assert.Contains(t, out, "Deleted trade T2")

	_, err = run(t, db, "trade", "rm", "T2")
	assert.ErrorIs(t, err, journal.ErrNotFound)

	_, err = run(t, db, "trade", "show", "T2")
	assert.ErrorIs(t, err, journal.ErrNotFound)
}

func TestImportExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte(
		"Date,Time,Side,Instrument,Result,Risk_Reward,Profit_Loss\n"+
			"2024-01-04,09:32,long,NQ!,win,3,600\n"+
			"2024-01-04,09:58,short,NQ!,loss,0.5,120\n"), 0o644))

	db := filepath.Join(dir, "journal.sqlite")

	out := mustRun(t, db, "import", "--dry-run", src)
	assert.Contains(t, out, "2 trades parsed")
	out = mustRun(t, db, "export")
	assert.Equal(t, 1, strings.Count(out, "\n"), "dry run must not save")

	out = mustRun(t, db, "import", src)
	assert.Contains(t, out, "Imported 2 trades")

	dst := filepath.Join(dir, "out.csv")
	mustRun(t, db, "export", "-o", dst)

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	trades, err := journal.ReadCSV(f, journal.NormalizeNone)
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, -120.0, *trades[1].ProfitLoss)
	assert.Equal(t, -1.0, trades[1].RiskReward)
	assert.NotEmpty(t, trades[0].ID)

	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("date,time\n2024-01-04,09:32\n"), 0o644))
	_, err = run(t, db, "import", bad)
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	t.Parallel()

	db := seedDB(t)

	out := mustRun(t, db, "stats", "--range", "all-time", "--daily")
	assert.Contains(t, out, "Trades:")
	assert.Contains(t, out, "3 (2 W / 1 L)")
	assert.Contains(t, out, "+$550.00")
	assert.Contains(t, out, "CUMULATIVE")

	out = mustRun(t, db, "stats", "--format", "json", "--instrument", "NQ!")
	var d struct {
		Filtered int `json:"filtered"`
		Metrics  struct {
			Total        int             `json:"total"`
			ProfitFactor json.RawMessage `json:"profitFactor"`
		} `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 1, d.Metrics.Total)
	assert.Equal(t, `"Infinity"`, string(d.Metrics.ProfitFactor))

	out = mustRun(t, db, "stats", "--format", "org", "--title", "Week 1",
		"--note", "size down after a loss", "--note", "no trades after 10:30")
	assert.Contains(t, out, "* REVIEW: Week 1")
	assert.Contains(t, out, "** Observations\n- size down after a loss\n- no trades after 10:30\n")

	_, err := run(t, db, "stats", "--bucket", "noon")
	assert.ErrorIs(t, err, analytics.ErrInvalidFilter)

	_, err = run(t, db, "stats", "--format", "xml")
	assert.Error(t, err)

	_, err = run(t, db, "stats", "--start", "2024-13-01")
	assert.ErrorIs(t, err, analytics.ErrInvalidDate)
}

func TestCalendarCmd(t *testing.T) {
	t.Parallel()

	db := seedDB(t)

	out := mustRun(t, db, "calendar")
	assert.Contains(t, out, "January 2024")
	assert.Contains(t, out, "1 W / 1 L  net +$250.00")

	out = mustRun(t, db, "calendar", "--month", "2023-12")
	assert.Contains(t, out, "December 2023")
	assert.Contains(t, out, "28 +$300.00")

	out = mustRun(t, db, "calendar", "--day", "2024-01-03")
	assert.Contains(t, out, "* 2024-01-03")
	assert.Contains(t, out, "ES!")

	out = mustRun(t, db, "calendar", "--day", "2024-01-06")
	assert.Contains(t, out, "No trades on 2024-01-06")

	_, err := run(t, db, "calendar", "--month", "Jan")
	assert.Error(t, err)
}

func TestConfigInitValidate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tradedash.yaml")
	db := filepath.Join(dir, "journal.sqlite")

	out := mustRun(t, db, "config", "init", "-o", path)
	assert.Contains(t, out, path)

	out = mustRun(t, db, "config", "validate", "-f", path)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "month-to-date")

	require.NoError(t, os.WriteFile(path, []byte("journal:\n  db_path: x\n  normalize: loose\n"), 0o644))
	_, err := run(t, db, "config", "validate", "-f", path)
	assert.Error(t, err)

	_, err = run(t, db, "--config", path, "stats")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out := mustRun(t, filepath.Join(t.TempDir(), "j.sqlite"), "version")
	assert.Equal(t, "tradedash version "+version+"\n", out)
}
