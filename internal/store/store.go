// Package store keeps a SQLite ledger of transfer runs and the files each
// run handled.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pyxsync/internal/domain"

	_ "modernc.org/sqlite"
)

// maxErrorLen bounds the stored last_error text, in bytes.
const maxErrorLen = 500

type Outcome string

const (
	OutcomeCopied      Outcome = "copied"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeOverwritten Outcome = "overwritten"
)

// Open opens the ledger at path and creates the schema when missing.
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)
	if err := Init(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history %s: %w", path, err)
	}
	return &History{db: db}, nil
}

type History struct {
	db *sql.DB
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) BeginRun(ctx context.Context, report domain.RunReport) error {
	_, err := h.db.ExecContext(ctx, `
INSERT INTO runs (id, sources, target, status, started_at)
VALUES (?, ?, ?, 'running', ?)`,
		report.ID, strings.Join(report.Sources, "\n"), report.Target, formatTime(report.StartedAt),
	)
	return err
}

// RecordBatch stores one row per handled file. Sources that lost a basename
// collision are marked overwritten.
func (h *History) RecordBatch(ctx context.Context, runID string, batch domain.CopyReport) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO files (run_id, category, src_path, destination, outcome)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	lost := map[string]bool{}
	for _, c := range batch.Collisions {
		lost[c.Overwrites] = true
	}

	for _, path := range batch.Copied {
		outcome := OutcomeCopied
		if lost[path] {
			outcome = OutcomeOverwritten
			delete(lost, path)
		}
		if _, err := stmt.ExecContext(ctx, runID, batch.Category.String(), path, batch.Destination, string(outcome)); err != nil {
			return err
		}
	}
	for _, path := range batch.Skipped {
		if _, err := stmt.ExecContext(ctx, runID, batch.Category.String(), path, batch.Destination, string(OutcomeSkipped)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (h *History) FinishRun(ctx context.Context, report domain.RunReport, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = truncate(runErr.Error(), maxErrorLen)
	}
	dates := ""
	if !report.DateRange.Earliest.IsZero() {
		dates = report.DateRange.String()
	}

	res, err := h.db.ExecContext(ctx, `
UPDATE runs
SET camera = ?, date_range = ?, destination = ?, status = ?, last_error = ?, copied = ?, finished_at = ?
WHERE id = ?`,
		string(report.Camera), dates, report.Destination, string(report.Status), msg,
		report.CopiedCount(), formatTime(report.FinishedAt), report.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n != 1 {
		return fmt.Errorf("finish run %s: no such run", report.ID)
	}
	return nil
}

type RunRecord struct {
	ID          string
	Sources     []string
	Target      string
	Camera      string
	DateRange   string
	Destination string
	Status      string
	LastError   string
	Copied      int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Recent lists the newest runs first.
func (h *History) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := h.db.QueryContext(ctx, `
SELECT id, sources, target, camera, date_range, destination, status, last_error, copied, started_at, COALESCE(finished_at, '')
FROM runs
ORDER BY started_at DESC, rowid DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var sources, started, finished string
		if err := rows.Scan(
			&r.ID, &sources, &r.Target, &r.Camera, &r.DateRange, &r.Destination, &r.Status, &r.LastError, &r.Copied, &started, &finished,
		); err != nil {
			return nil, err
		}
		r.Sources = strings.Split(sources, "\n")
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}

	return out, rows.Err()
}

type FileRecord struct {
	Category    string
	SrcPath     string
	Destination string
	Outcome     Outcome
}

func (h *History) Files(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := h.db.QueryContext(ctx, `
SELECT category, src_path, destination, outcome
FROM files
WHERE run_id = ?
ORDER BY id
`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRecord
	for rows.Next() {
		var f FileRecord
		var outcome string
		if err := rows.Scan(&f.Category, &f.SrcPath, &f.Destination, &outcome); err != nil {
			return nil, err
		}
		f.Outcome = Outcome(outcome)
		out = append(out, f)
	}

	return out, rows.Err()
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
