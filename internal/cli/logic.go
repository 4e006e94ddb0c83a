package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idelchi/scanlog/internal/fsscan"
	"github.com/idelchi/scanlog/internal/store"
)

func newScanCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Collect file metadata below a directory",
		Long: heredoc.Doc(`
			Walks the tree below --root and records name, extension, size and a
			timestamp (creation time where the platform exposes it, modification
			time otherwise) for every readable file.

			Directories listed with --exclude are pruned together with everything
			beneath them; .Trash, .Spotlight-V100 and .TemporaryItems are always
			skipped. Files that cannot be read are skipped silently.

			After the walk a summary is printed and the --sample largest files are
			written to --output. Ctrl+C stops the walk, reports how many files were
			collected and writes nothing.
		`),
		Args: cobra.NoArgs,
	}

	home, _ := os.UserHomeDir()

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.String("root", home, "Directory to scan")
	flags.StringSliceP("exclude", "e", DefaultExcludes, "Absolute directories to exclude, with their subtrees")
	flags.StringP("output", "o", DefaultScanOutput, "JSON file receiving the size-sorted sample")
	flags.Int("sample", DefaultSample, "Number of largest files to save")
	flags.IntP("top", "t", fsscan.DefaultTopExtensions, "Number of extensions listed in the summary")
	flags.Int("workers", 1, "Number of directory walkers")
	flags.String("db", "", "Optional DuckDB file receiving every scanned record")
	flags.StringP("format", "f", DefaultFormat, "Summary format: table or json")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := loadConfig(cmd.Flags(), "scan", global.config)
		if err != nil {
			return err
		}

		cfg := scanConfigFrom(v)
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := newLogger(cmd.ErrOrStderr(), global.debug)

		return runScan(cmd.Context(), cfg, log, cmd.OutOrStdout(), cmd.ErrOrStderr(), !global.debug && isTerminal(cmd.ErrOrStderr()))
	}

	return cmd
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// runScan drives a scan: walk, summary, sample file and optional database.
// An interrupted walk is reported and ends without writing anything.
//
//nolint:funlen // Linear driver
func runScan(ctx context.Context, cfg ScanConfig, log logrus.FieldLogger, stdout, stderr io.Writer, interactive bool) error {
	// Notices go to stderr when stdout carries JSON.
	notice := stdout
	if cfg.Format == "json" {
		notice = stderr
	}

	fmt.Fprintln(notice, "Scanning filesystem... This may take a while...")
	fmt.Fprintln(notice, "Press Ctrl+C to stop.")
	fmt.Fprintln(notice)

	enableProgress := interactive && cfg.Format != "json"

	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %s files, %s",
				humanize.Comma(files), humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	res, err := fsscan.Scan(ctx, fsscan.Options{
		Root:     cfg.Root,
		Excludes: cfg.Excludes,
		Workers:  cfg.Workers,
		Logger:   log,
	}, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if errors.Is(err, context.Canceled) {
		printInterrupted(notice, res)

		return nil
	}

	if err != nil {
		return err
	}

	summary := fsscan.Summarize(res, cfg.Top)

	switch cfg.Format {
	case "json":
		err = PrintSummaryJSON(summary, stdout)
	default:
		err = PrintSummaryTable(summary, stdout)
	}

	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		printInterrupted(notice, res)

		return nil
	}

	sorted := fsscan.SortBySize(res, true)
	sample := sorted[:min(cfg.Sample, len(sorted))]

	if err := store.WriteJSON(cfg.Output, sample); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"path": cfg.Output, "records": len(sample)}).Debug("sample written")

	fmt.Fprintf(notice, "\nSample of %s largest files saved to '%s'\n", humanize.Comma(int64(len(sample))), cfg.Output)

	if cfg.DB == "" {
		fmt.Fprintf(notice, "Full scan contains %s files\n", humanize.Comma(int64(res.Len())))

		return nil
	}

	return saveToDB(ctx, cfg.DB, res, notice)
}

func saveToDB(ctx context.Context, path string, res *fsscan.Result, notice io.Writer) error {
	db, err := store.OpenDuckDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveScan(ctx, res); err != nil {
		return err
	}

	n, err := db.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(notice, "Full results stored in '%s' with %s files\n", path, humanize.Comma(int64(n)))

	return nil
}

func printInterrupted(w io.Writer, res *fsscan.Result) {
	fmt.Fprintln(w, "\n\nScan interrupted by user.")
	fmt.Fprintf(w, "Files scanned so far: %d\n", res.Len())
}
