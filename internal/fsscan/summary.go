package fsscan

import (
	"sort"
	"time"
)

// DefaultTopExtensions is the number of extensions a summary lists by default.
const DefaultTopExtensions = 10

// bytesPerGiB converts byte totals to gibibytes.
const bytesPerGiB = 1 << 30

// ExtCount is the number of files sharing an extension.
type ExtCount struct {
	// Extension is the file extension or NoExtension.
	Extension string `json:"extension"`
	// Count is the number of files with this extension.
	Count int `json:"count"`
}

// Summary holds aggregate statistics for a scan.
type Summary struct {
	// FileCount is the total number of files recorded.
	FileCount int `json:"file_count"`
	// TotalBytes is the cumulative size of all recorded files.
	TotalBytes int64 `json:"total_bytes"`
	// TopExtensions lists the most frequent extensions, most frequent first.
	TopExtensions []ExtCount `json:"top_extensions"`
	// Errors is the number of entries skipped during the walk.
	Errors int64 `json:"errors"`
	// Elapsed is the wall time of the walk.
	Elapsed time.Duration `json:"elapsed"`
}

// TotalGiB returns TotalBytes in gibibytes.
func (s Summary) TotalGiB() float64 {
	return float64(s.TotalBytes) / bytesPerGiB
}

// Summarize derives counts, total size and the topN most frequent extensions.
// Extensions with equal counts are ordered lexically.
func Summarize(res *Result, topN int) Summary {
	summary := Summary{TopExtensions: []ExtCount{}}
	if res == nil {
		return summary
	}

	counts := make(map[string]int)

	for _, rec := range res.Files {
		summary.TotalBytes += rec.Size
		counts[rec.Extension]++
	}

	exts := make([]ExtCount, 0, len(counts))
	for ext, n := range counts {
		exts = append(exts, ExtCount{Extension: ext, Count: n})
	}

	sort.Slice(exts, func(i, j int) bool {
		if exts[i].Count != exts[j].Count {
			return exts[i].Count > exts[j].Count
		}

		return exts[i].Extension < exts[j].Extension
	})

	if topN >= 0 && len(exts) > topN {
		exts = exts[:topN]
	}

	summary.FileCount = len(res.Files)
	summary.TopExtensions = exts
	summary.Errors = res.Errors
	summary.Elapsed = res.Elapsed

	return summary
}

// SortBySize returns the records ordered by size. Records are first ordered
// by path, so equal sizes always come out in the same order.
func SortBySize(res *Result, descending bool) []Record {
	if res == nil {
		return []Record{}
	}

	records := make([]Record, 0, len(res.Files))
	for _, rec := range res.Files {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			return records[i].Size > records[j].Size
		}

		return records[i].Size < records[j].Size
	})

	return records
}
