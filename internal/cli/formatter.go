package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/idelchi/scanlog/internal/fsscan"
	"github.com/idelchi/scanlog/internal/store"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

//nolint:gochecknoglobals // Shared style
var heading = color.New(color.Bold)

// PrintSummaryJSON outputs scan statistics in JSON format.
func PrintSummaryJSON(summary fsscan.Summary, writer io.Writer) error {
	return store.EncodeJSON(writer, summary)
}

// PrintSummaryTable outputs scan statistics in human-readable table format.
//
//nolint:forbidigo // This function prints output to the console.
func PrintSummaryTable(summary fsscan.Summary, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "Total files found:\t%s\n", humanize.Comma(int64(summary.FileCount)))
	fmt.Fprintf(w, "Total size:\t%.2f GiB (%s)\n",
		summary.TotalGiB(), humanize.IBytes(uint64(summary.TotalBytes))) //nolint:gosec // Sizes are never negative

	if summary.Errors > 0 {
		fmt.Fprintf(w, "Skipped entries:\t%d\n", summary.Errors)
	}

	fmt.Fprintf(w, "Elapsed:\t%v\n", summary.Elapsed)

	if err := w.Flush(); err != nil {
		return err
	}

	heading.Fprintf(writer, "\nTop %d file extensions:\n", len(summary.TopExtensions))

	for i, ext := range summary.TopExtensions {
		fmt.Fprintf(w, "  %d) %s:\t%s\n", i+1, ext.Extension, humanize.Comma(int64(ext.Count)))
	}

	return w.Flush()
}

// PrintChatReport outputs the result of a chat extraction.
//
//nolint:forbidigo // This function prints output to the console.
func PrintChatReport(report chatReport, writer io.Writer) error {
	if len(report.Entries) == 0 {
		fmt.Fprintf(writer, "No messages from %s found.\n", report.Sender)
	} else {
		fmt.Fprintf(writer, "Found %d message(s) from %s\n", len(report.Entries), report.Sender)

		if report.Output != "" {
			fmt.Fprintf(writer, "Results saved to '%s'\n", report.Output)
		}

		heading.Fprintf(writer, "\n%s's messages:\n", report.Sender)

		for _, m := range report.Matches {
			fmt.Fprintf(writer, "  → Found '%s' followed by: %s\n", report.Keyword, m.Word)
		}
	}

	heading.Fprintf(writer, "\nWords following '%s':\n", report.Keyword)

	if report.Counts == nil || report.Counts.Len() == 0 {
		fmt.Fprintln(writer, "  (none)")

		return nil
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)
	for _, wc := range report.Counts.Sorted() {
		fmt.Fprintf(w, "  %s\t%d\n", wc.Word, wc.Count)
	}

	return w.Flush()
}
