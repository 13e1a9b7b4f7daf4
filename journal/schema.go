package journal

// Schema creates the trades table. seq keeps entry order stable across
// edits, since an upsert on id keeps the original row.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	side TEXT NOT NULL CHECK (side IN ('long', 'short')),
	instrument TEXT NOT NULL,
	result TEXT NOT NULL CHECK (result IN ('win', 'loss')),
	risk_reward REAL NOT NULL,
	profit_loss REAL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`
