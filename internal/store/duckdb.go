package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2" // Registers the "duckdb" driver

	"github.com/idelchi/scanlog/internal/fsscan"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path VARCHAR PRIMARY KEY,
	filename VARCHAR NOT NULL,
	extension VARCHAR NOT NULL,
	size_bytes BIGINT NOT NULL,
	file_time TIMESTAMP NOT NULL,
	timestamp_type VARCHAR NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_metadata (
	key VARCHAR PRIMARY KEY,
	value VARCHAR
);

CREATE INDEX IF NOT EXISTS idx_files_extension ON files(extension);
`

// DuckDB stores complete scan results in a DuckDB database file.
type DuckDB struct {
	db *sql.DB
}

// OpenDuckDB opens (or creates) the database at path and ensures the schema exists.
func OpenDuckDB(path string) (*DuckDB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &DuckDB{db: db}, nil
}

// Close closes the database connection.
func (d *DuckDB) Close() error {
	return d.db.Close()
}

// SaveScan replaces the stored files with the records in res and records the
// scan root, time and file count as metadata.
func (d *DuckDB) SaveScan(ctx context.Context, res *fsscan.Result) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM files"); err != nil {
		return fmt.Errorf("clearing files: %w", err)
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM scan_metadata"); err != nil {
		return fmt.Errorf("clearing metadata: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO files (path, filename, extension, size_bytes, file_time, timestamp_type)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range fsscan.SortBySize(res, true) {
		if _, err = stmt.ExecContext(ctx,
			rec.Path, rec.Filename, rec.Extension, rec.Size, rec.Time().UTC(), string(rec.TimestampType),
		); err != nil {
			return fmt.Errorf("inserting %q: %w", rec.Path, err)
		}
	}

	metadata := map[string]string{
		"root":       res.Root,
		"scanned_at": time.Now().UTC().Format(time.RFC3339),
		"file_count": strconv.Itoa(res.Len()),
	}

	for key, value := range metadata {
		if _, err = tx.ExecContext(ctx, "INSERT INTO scan_metadata (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing scan: %w", err)
	}

	return nil
}

// Count returns the number of stored files.
func (d *DuckDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting files: %w", err)
	}

	return n, nil
}

// Metadata returns the value stored for key by the last SaveScan.
func (d *DuckDB) Metadata(ctx context.Context, key string) (string, error) {
	var value string
	if err := d.db.QueryRowContext(ctx, "SELECT value FROM scan_metadata WHERE key = ?", key).Scan(&value); err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}

	return value, nil
}
