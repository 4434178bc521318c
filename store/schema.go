package store

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	schedule TEXT NOT NULL,
	games INTEGER NOT NULL,
	pitchers INTEGER NOT NULL,
	processed INTEGER NOT NULL,
	no_log INTEGER NOT NULL,
	malformed INTEGER NOT NULL,
	slots INTEGER NOT NULL,
	matched INTEGER NOT NULL,
	issues INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS game_features (
	run_id TEXT NOT NULL REFERENCES runs(id),
	row_index INTEGER NOT NULL,
	date TEXT NOT NULL,
	side TEXT NOT NULL,
	team TEXT NOT NULL,
	pitcher TEXT NOT NULL,
	feature TEXT NOT NULL,
	value REAL,
	home_win INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_game_features_run ON game_features(run_id);
CREATE INDEX IF NOT EXISTS idx_game_features_pitcher ON game_features(pitcher, date);
`
