// Package store persists extracted records in SQLite. Records are keyed by
// an auto-increment id; field values are stored as a JSON object so the
// tracked-field set remains configuration rather than schema.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsawler/hsereport/extract"
)

// Store wraps the records database.
type Store struct {
	db *sql.DB
}

// StoredRecord is one persisted record row.
type StoredRecord struct {
	ID        int64             `json:"id"`
	File      string            `json:"file"`
	Date      string            `json:"date"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
}

// Open opens (or creates) the database at path and applies the production
// pragmas and schema. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			file TEXT NOT NULL,
			date TEXT NOT NULL,
			values_json TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init records schema: %w", err)
	}
	return nil
}

// SaveRecord inserts one extracted record and returns its id.
func (s *Store) SaveRecord(ctx context.Context, rec extract.Record) (int64, error) {
	valuesJSON, err := json.Marshal(rec.Values)
	if err != nil {
		return 0, fmt.Errorf("marshal values: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO records (file, date, values_json, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.File, rec.Date, string(valuesJSON), time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	return res.LastInsertId()
}

// SaveRecords inserts a batch of records in one transaction. Either all
// records are stored or none are.
func (s *Store) SaveRecords(ctx context.Context, recs []extract.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, rec := range recs {
		valuesJSON, err := json.Marshal(rec.Values)
		if err != nil {
			return fmt.Errorf("marshal values for %s: %w", rec.File, err)
		}
		_, err = tx.Exec(`
			INSERT INTO records (file, date, values_json, created_at)
			VALUES (?, ?, ?, ?)
		`, rec.File, rec.Date, string(valuesJSON), now)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", rec.File, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit stored records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]StoredRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file, date, values_json, created_at
		FROM records ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []StoredRecord
	for rows.Next() {
		var rec StoredRecord
		var valuesJSON string
		var createdAtUnix int64
		if err := rows.Scan(&rec.ID, &rec.File, &rec.Date, &valuesJSON, &createdAtUnix); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(valuesJSON), &rec.Values); err != nil {
			return nil, fmt.Errorf("unmarshal values for record %d: %w", rec.ID, err)
		}
		rec.CreatedAt = time.Unix(createdAtUnix, 0)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// Record converts a stored row back to an extract.Record projection.
func (r StoredRecord) Record() extract.Record {
	return extract.Record{File: r.File, Date: r.Date, Values: r.Values}
}
