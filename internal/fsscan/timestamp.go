package fsscan

import (
	"io/fs"
	"time"
)

// fileTime picks the creation time when the platform exposes one and falls
// back to the modification time otherwise.
func fileTime(path string, info fs.FileInfo) (time.Time, TimestampKind) {
	if t, ok := birthTime(path, info); ok {
		return t, Created
	}

	return info.ModTime(), Modified
}
