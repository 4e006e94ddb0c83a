package fsscan

import (
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// NoExtension is recorded for files whose name carries no extension.
const NoExtension = "no_extension"

// Local ISO-8601 layouts without zone. The fraction is printed with all six
// microsecond digits, or left out when it is zero.
const (
	readableLayout         = "2006-01-02T15:04:05"
	readableLayoutFraction = "2006-01-02T15:04:05.000000"
)

// TimestampKind tells which file time a Record carries.
type TimestampKind string

const (
	// Created means the platform exposed a creation (birth) time.
	Created TimestampKind = "created"
	// Modified means the record fell back to the modification time.
	Modified TimestampKind = "modified"
)

// Record is the metadata collected for a single file.
type Record struct {
	// Filename is the base name of the file.
	Filename string `json:"filename"`
	// Extension is the name suffix including the dot, or NoExtension.
	Extension string `json:"extension"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// Path is the absolute path of the file.
	Path string `json:"path"`
	// Timestamp is the file time in fractional seconds since the epoch.
	Timestamp float64 `json:"timestamp"`
	// TimestampReadable is Timestamp rendered in local time.
	TimestampReadable string `json:"timestamp_readable"`
	// TimestampType tells whether Timestamp is a creation or modification time.
	TimestampType TimestampKind `json:"timestamp_type"`
}

// NewRecord builds a Record for the file at path.
func NewRecord(path string, size int64, t time.Time, kind TimestampKind) Record {
	name := filepath.Base(path)

	// Leading dots mark hidden files, not extensions: ".bashrc" has none,
	// ".config.yml" has ".yml".
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	if ext == "" {
		ext = NoExtension
	}

	return Record{
		Filename:          name,
		Extension:         ext,
		Size:              size,
		Path:              path,
		Timestamp:         float64(t.UnixNano()) / float64(time.Second),
		TimestampReadable: readableTime(t),
		TimestampType:     kind,
	}
}

// readableTime renders t in local time at microsecond precision.
func readableTime(t time.Time) string {
	t = t.Local().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(readableLayout)
	}

	return t.Format(readableLayoutFraction)
}

// Time returns Timestamp as a time.Time.
func (r Record) Time() time.Time {
	sec, frac := math.Modf(r.Timestamp)

	return time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
}

// Result maps absolute file paths to their records for a single scan.
type Result struct {
	// Root is the absolute directory the scan started from.
	Root string `json:"root"`
	// Files holds one record per accessible file.
	Files map[string]Record `json:"files"`
	// Errors counts entries that were skipped because they could not be read.
	Errors int64 `json:"errors"`
	// Elapsed is the wall time of the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// Len returns the number of files in the result.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}

	return len(r.Files)
}

// Options configures a scan.
type Options struct {
	// Root is the directory to scan.
	Root string
	// Excludes lists directories whose whole subtree is skipped.
	Excludes []string
	// Workers is the number of fastwalk workers (values below 1 mean 1).
	Workers int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug output; nil discards it.
	Logger logrus.FieldLogger
}

// collector accumulates records from fastwalk callbacks, which may run on
// several goroutines when more than one worker is configured.
type collector struct {
	mu         sync.Mutex
	root       string
	files      map[string]Record
	totalBytes int64
	errorCount int64
}

// newCollector creates an empty collector for a scan rooted at root.
func newCollector(root string) *collector {
	return &collector{
		root:  root,
		files: make(map[string]Record),
	}
}

// addError counts an entry that was skipped.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// add stores rec, replacing an earlier record for the same path.
func (c *collector) add(rec Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.files[rec.Path]; ok {
		c.totalBytes -= old.Size
	}

	c.files[rec.Path] = rec
	c.totalBytes += rec.Size
}

// progress returns the current file count and byte total.
func (c *collector) progress() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return int64(len(c.files)), c.totalBytes
}

// result hands the collected records over as a Result.
func (c *collector) result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &Result{
		Root:   c.root,
		Files:  c.files,
		Errors: c.errorCount,
	}
}
