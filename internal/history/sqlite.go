package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// corruptSuffix is appended to a database file that SQLite refuses to open.
const corruptSuffix = ".corrupt"

const createTripsTable = `
CREATE TABLE IF NOT EXISTS recent_trips (
	position      INTEGER PRIMARY KEY,
	id            TEXT NOT NULL,
	from_label    TEXT NOT NULL,
	to_label      TEXT NOT NULL,
	distance      REAL NOT NULL,
	best_label    TEXT NOT NULL,
	best_emission REAL NOT NULL,
	trip_type     TEXT NOT NULL,
	purpose_label TEXT NOT NULL,
	created_at    TEXT NOT NULL
)`

// SQLiteBackend stores history in an SQLite database.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens (creating if needed) the database at path.
//
// A file that is not a readable SQLite database is moved aside to
// path+".corrupt" and a fresh database is created in its place, so corrupt
// storage reads as an empty history.
func OpenSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := openTripsDB(ctx, path)
	if err == nil {
		return &SQLiteBackend{db: db}, nil
	}
	if !isCorruptDB(err) {
		return nil, err
	}

	zerolog.Ctx(ctx).Warn().
		Str("component", "history").
		Err(err).
		Str("path", path).
		Msg("history database unreadable, moving it aside")
	if quarantineErr := quarantineDB(path); quarantineErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, quarantineErr)
	}

	db, err = openTripsDB(ctx, path)
	if err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func openTripsDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err = db.ExecContext(ctx, createTripsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating recent_trips table: %w", err)
	}
	return db, nil
}

// isCorruptDB reports whether err is SQLite rejecting the file contents.
func isCorruptDB(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended result codes keep the primary code in the low byte.
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
		return true
	default:
		return false
	}
}

// quarantineDB renames path to path+".corrupt" and drops its WAL and
// shared-memory companions.
func quarantineDB(path string) error {
	if err := os.Rename(path, path+corruptSuffix); err != nil {
		return fmt.Errorf("moving corrupt history database aside: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", path+suffix, err)
		}
	}
	return nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load returns the stored trips ordered newest first. Rows that cannot be
// decoded make the whole list ErrStoreCorrupted.
func (b *SQLiteBackend) Load(ctx context.Context) ([]Record, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT id, from_label, to_label, distance, best_label, best_emission,
		       trip_type, purpose_label, created_at
		FROM recent_trips ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying recent trips: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var r Record
		var createdAt string
		if scanErr := rows.Scan(&r.ID, &r.From, &r.To, &r.Distance, &r.BestLabel,
			&r.BestEmission, &r.TripType, &r.PurposeLabel, &createdAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, scanErr)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreCorrupted, err)
		}
		records = append(records, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent trips: %w", err)
	}
	return records, nil
}

// Save replaces the stored trips in a single transaction.
func (b *SQLiteBackend) Save(ctx context.Context, records []Record) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = replaceTrips(ctx, tx, records); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %w)", err, rbErr)
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing recent trips: %w", err)
	}
	return nil
}

func replaceTrips(ctx context.Context, tx *sql.Tx, records []Record) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM recent_trips"); err != nil {
		return fmt.Errorf("clearing recent trips: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recent_trips (position, id, from_label, to_label, distance, best_label,
		                          best_emission, trip_type, purpose_label, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx, i, r.ID, r.From, r.To, r.Distance, r.BestLabel,
			r.BestEmission, r.TripType, r.PurposeLabel, r.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
			return fmt.Errorf("inserting trip %s: %w", r.ID, err)
		}
	}
	return nil
}
