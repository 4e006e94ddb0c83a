package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/scanlog/internal/fsscan"
)

func scanResult(root string, records ...fsscan.Record) *fsscan.Result {
	res := &fsscan.Result{Root: root, Files: map[string]fsscan.Record{}}
	for _, r := range records {
		res.Files[r.Path] = r
	}

	return res
}

func TestDuckDB_SaveScanReplacesPreviousScan(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2024, 2, 1, 10, 15, 30, 0, time.UTC)

	db, err := OpenDuckDB(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	first := scanResult("/home/a",
		fsscan.NewRecord("/home/a/x.txt", 10, ts, fsscan.Modified),
		fsscan.NewRecord("/home/a/y", 20, ts, fsscan.Created),
		fsscan.NewRecord("/home/a/z.go", 30, ts, fsscan.Modified),
	)
	require.NoError(t, db.SaveScan(ctx, first))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var ext string
	var size int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		"SELECT extension, size_bytes FROM files WHERE path = ?", "/home/a/y").Scan(&ext, &size))
	assert.Equal(t, fsscan.NoExtension, ext)
	assert.Equal(t, int64(20), size)

	second := scanResult("/home/b", fsscan.NewRecord("/home/b/only.md", 1, ts, fsscan.Modified))
	require.NoError(t, db.SaveScan(ctx, second))

	n, err = db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	root, err := db.Metadata(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "/home/b", root)

	count, err := db.Metadata(ctx, "file_count")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}

func TestDuckDB_SaveScanTwice(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2024, 2, 1, 10, 15, 30, 0, time.UTC)

	db, err := OpenDuckDB(filepath.Join(t.TempDir(), "scan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	res := scanResult("/home/a",
		fsscan.NewRecord("/home/a/x.txt", 10, ts, fsscan.Modified),
		fsscan.NewRecord("/home/a/z.go", 30, ts, fsscan.Created),
	)

	require.NoError(t, db.SaveScan(ctx, res))
	require.NoError(t, db.SaveScan(ctx, res))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var size int64
	require.NoError(t, db.db.QueryRowContext(ctx,
		"SELECT size_bytes FROM files WHERE path = ?", "/home/a/z.go").Scan(&size))
	assert.Equal(t, int64(30), size)

	count, err := db.Metadata(ctx, "file_count")
	require.NoError(t, err)
	assert.Equal(t, "2", count)
}
