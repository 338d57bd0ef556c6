package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codecompany/recipeboot/internal/app/checkout"
)

// FileName is the journal database inside the managed deps directory.
const FileName = "bootstrap.db"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS reconciles (
	run_id   TEXT NOT NULL,
	at       TEXT NOT NULL,
	url      TEXT NOT NULL,
	revision TEXT NOT NULL,
	action   TEXT NOT NULL
)`

// Store is a write-mostly journal of what each reconcile did, kept next to
// the managed checkout. It exists for postmortems (any sqlite client can
// read it); nothing on the bootstrap path depends on its contents, which is
// why the reconciler treats its failures as warnings.
type Store struct{}

func (Store) Record(ctx context.Context, dir string, rec checkout.ReconcileRecord) error {
	db, err := open(ctx, dir, true)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	_, err = db.ExecContext(ctx,
		"INSERT INTO reconciles (run_id, at, url, revision, action) VALUES (?, ?, ?, ?, ?)",
		rec.RunID, rec.At.UTC().Format(time.RFC3339Nano), rec.URL, rec.Revision, string(rec.Action),
	)
	if err != nil {
		return fmt.Errorf("insert reconcile row: %w", err)
	}
	return nil
}

// LastRecord returns the most recent journal row, or false when the journal
// is empty or absent.
func (Store) LastRecord(ctx context.Context, dir string) (checkout.ReconcileRecord, bool, error) {
	db, err := open(ctx, dir, false)
	if err != nil {
		return checkout.ReconcileRecord{}, false, err
	}
	defer func() {
		_ = db.Close()
	}()

	var rec checkout.ReconcileRecord
	var at string
	var action string
	row := db.QueryRowContext(ctx,
		"SELECT run_id, at, url, revision, action FROM reconciles ORDER BY rowid DESC LIMIT 1")
	if err := row.Scan(&rec.RunID, &at, &rec.URL, &rec.Revision, &action); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return checkout.ReconcileRecord{}, false, nil
		}
		return checkout.ReconcileRecord{}, false, fmt.Errorf("read last reconcile: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return checkout.ReconcileRecord{}, false, fmt.Errorf("parse reconcile timestamp: %w", err)
	}
	rec.At = parsed
	rec.Action = checkout.Action(action)
	return rec, true, nil
}

func open(ctx context.Context, dir string, create bool) (*sql.DB, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("journal dir required")
	}
	if create {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, FileName))
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return db, nil
}
