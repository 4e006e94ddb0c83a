package fsscan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// statFunc resolves file metadata and follows symlinks. Tests replace it to
// simulate files that cannot be read.
//
//nolint:gochecknoglobals // Swapped in tests
var statFunc = os.Stat

// startProgressReporter invokes hook(files, bytes) on each tick. The returned
// stop function ends the ticker and waits for a running hook to finish, so no
// update is delivered after it returns.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(c *collector, hook func(int64, int64), interval time.Duration) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

// discardLogger is used when Options.Logger is nil.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Scan walks the tree at opt.Root and records metadata for every file that is
// not pruned by opt.Excludes or the fixed directory blocklist.
//
// Files whose metadata cannot be read are skipped and only counted in
// Result.Errors. If ctx is cancelled mid-walk, Scan returns the records
// gathered so far together with ctx's error.
//
// Progress updates are sent to progressHook if provided.
func Scan(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Result, error) {
	log := opt.Logger
	if log == nil {
		log = discardLogger()
	}

	if opt.Root == "" {
		opt.Root = "."
	}

	root, err := filepath.Abs(filepath.Clean(opt.Root))
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	if statInfo, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", root, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", root)
	}

	excluded, err := NewExclusionSet(opt.Excludes)
	if err != nil {
		return nil, err
	}

	workers := max(opt.Workers, 1)

	collector := newCollector(root)

	log.WithFields(logrus.Fields{
		"root":     root,
		"excludes": excluded.Paths(),
		"workers":  workers,
	}).Debug("starting scan")

	start := time.Now()

	if excluded.Contains(root) {
		log.WithField("path", root).Debug("root is excluded, nothing to scan")

		res := collector.result()
		res.Elapsed = time.Since(start)

		return res, nil
	}

	stopProgress := startProgressReporter(collector, progressHook, opt.ProgressInterval)
	defer stopProgress()

	conf := &fastwalk.Config{
		Follow:     false, // Symlinked directories are not descended
		NumWorkers: workers,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping unreadable entry")
			collector.addError()

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			return visitDir(path, root, d.Name(), excluded, log)
		}

		info, err := statFunc(path)
		if err != nil {
			log.WithError(err).WithField("path", path).Debug("skipping file")
			collector.addError()

			return nil //nolint:nilerr // Unreadable files are dropped, not fatal
		}

		if info.IsDir() {
			log.WithField("path", path).Debug("not following directory symlink")

			return nil
		}

		t, kind := fileTime(path, info)
		collector.add(NewRecord(path, info.Size(), t, kind))

		return nil
	})

	res := collector.result()
	res.Elapsed = time.Since(start)

	if walkErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}

		return res, fmt.Errorf("walking %q: %w", root, walkErr)
	}

	log.WithFields(logrus.Fields{
		"files":   res.Len(),
		"errors":  res.Errors,
		"elapsed": res.Elapsed,
	}).Debug("scan finished")

	return res, nil
}

// visitDir applies the two pruning rules to a directory. The blocklist is not
// applied to the root itself.
func visitDir(path, root, name string, excluded ExclusionSet, log logrus.FieldLogger) error {
	if excluded.Contains(path) {
		log.WithField("path", path).Debug("excluding directory")

		return filepath.SkipDir
	}

	if path != root && Blocked(name) {
		log.WithField("path", path).Debug("skipping blocklisted directory")

		return filepath.SkipDir
	}

	return nil
}
