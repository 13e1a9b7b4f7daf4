package journal

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the local trade store.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

const upsertTrade = `
	INSERT INTO trades
	(id, date, time, side, instrument, result, risk_reward, profit_loss, notes)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		date = excluded.date,
		time = excluded.time,
		side = excluded.side,
		instrument = excluded.instrument,
		result = excluded.result,
		risk_reward = excluded.risk_reward,
		profit_loss = excluded.profit_loss,
		notes = excluded.notes`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveTrade(db execer, t Trade) error {
	var pl sql.NullFloat64
	if t.ProfitLoss != nil {
		pl = sql.NullFloat64{Float64: *t.ProfitLoss, Valid: true}
	}

	_, err := db.Exec(upsertTrade,
		t.ID, t.Date, t.Time, string(t.Side), t.Instrument, string(t.Result),
		t.RiskReward, pl, t.Notes,
	)
	return err
}

// Save inserts t, or replaces the stored trade with the same id.
func (j *SQLite) Save(t Trade) error {
	return saveTrade(j.db, t)
}

// SaveAll saves every trade in one transaction. Either all of them are
// stored or none are.
func (j *SQLite) SaveAll(trades []Trade) (err error) {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range trades {
		if err = saveTrade(tx, t); err != nil {
			return fmt.Errorf("save trade %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

const selectTrade = `SELECT id, date, time, side, instrument, result, risk_reward, profit_loss, notes FROM trades`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (Trade, error) {
	var (
		t            Trade
		side, result string
		pl           sql.NullFloat64
	)
	if err := row.Scan(&t.ID, &t.Date, &t.Time, &side, &t.Instrument, &result, &t.RiskReward, &pl, &t.Notes); err != nil {
		return Trade{}, err
	}
	t.Side = Side(side)
	t.Result = Result(result)
	if pl.Valid {
		t.ProfitLoss = Float(pl.Float64)
	}
	return t, nil
}

// Get returns a single trade by id.
func (j *SQLite) Get(id string) (Trade, error) {
	t, err := scanTrade(j.db.QueryRow(selectTrade+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return Trade{}, err
	}
	return t, nil
}

// List returns every trade in the order it was first recorded.
func (j *SQLite) List() ([]Trade, error) {
	rows, err := j.db.Query(selectTrade + ` ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a trade by id.
func (j *SQLite) Delete(id string) error {
	res, err := j.db.Exec(`DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
