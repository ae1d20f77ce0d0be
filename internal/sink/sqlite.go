package sink

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"numberplater/internal/plate"
)

const sqliteDriver = "sqlite"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id       TEXT PRIMARY KEY,
	created  TEXT NOT NULL,
	families TEXT NOT NULL,
	sources  TEXT NOT NULL,
	words    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS words (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	word       TEXT NOT NULL,
	renderings INTEGER NOT NULL,
	PRIMARY KEY (run_id, word)
);
CREATE TABLE IF NOT EXISTS renderings (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	word      TEXT NOT NULL,
	rank      INTEGER NOT NULL,
	rendering TEXT NOT NULL,
	PRIMARY KEY (run_id, word, rank)
);
CREATE INDEX IF NOT EXISTS renderings_by_plate ON renderings(rendering);
`

// SQLiteSink appends each run to a SQLite database. Earlier runs are kept
// and told apart by run id.
type SQLiteSink struct {
	path string
}

func (s *SQLiteSink) Path() string { return s.path }

func (s *SQLiteSink) Write(ctx context.Context, meta Meta, dict plate.Dictionary) error {
	if meta.RunID == "" {
		return fmt.Errorf("sqlite sink: run id is required")
	}
	db, err := sql.Open(sqliteDriver, s.path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	created := meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, created, families, sources, words) VALUES (?, ?, ?, ?, ?)`,
		meta.RunID, created.UTC().Format(time.RFC3339), meta.Families.String(), strings.Join(meta.Sources, ","), len(dict),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (run_id, word, renderings) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer wordStmt.Close()
	rendStmt, err := tx.PrepareContext(ctx, `INSERT INTO renderings (run_id, word, rank, rendering) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer rendStmt.Close()

	keys := make([]plate.Word, 0, len(dict))
	for w := range dict {
		keys = append(keys, w)
	}
	slices.Sort(keys)
	for _, w := range keys {
		rs := dict[w]
		if _, err := wordStmt.ExecContext(ctx, meta.RunID, string(w), len(rs)); err != nil {
			return fmt.Errorf("insert word %q: %w", w, err)
		}
		for rank, r := range rs {
			if _, err := rendStmt.ExecContext(ctx, meta.RunID, string(w), rank+1, r); err != nil {
				return fmt.Errorf("insert rendering %q: %w", r, err)
			}
		}
	}
	return tx.Commit()
}
