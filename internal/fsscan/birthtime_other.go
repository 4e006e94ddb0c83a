//go:build !darwin && !freebsd && !netbsd && !linux && !windows

package fsscan

import (
	"io/fs"
	"time"
)

func birthTime(string, fs.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
