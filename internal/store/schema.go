package store

import "database/sql"

func Init(db *sql.DB) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA busy_timeout=5000;`,
		`PRAGMA foreign_keys=ON;`,
		`
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	sources TEXT NOT NULL,
	target TEXT NOT NULL,

	camera TEXT NOT NULL DEFAULT '',
	date_range TEXT NOT NULL DEFAULT '',
	destination TEXT NOT NULL DEFAULT '',

	status TEXT NOT NULL DEFAULT 'running',
	last_error TEXT NOT NULL DEFAULT '',
	copied INTEGER NOT NULL DEFAULT 0,
	started_at TEXT NOT NULL, -- RFC3339
	finished_at TEXT
);
`,
		`
CREATE TABLE IF NOT EXISTS files (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	src_path TEXT NOT NULL,
	destination TEXT NOT NULL,
	outcome TEXT NOT NULL, -- copied, skipped, overwritten
	created_at TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
`,
		`CREATE INDEX IF NOT EXISTS files_run ON files(run_id);`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
