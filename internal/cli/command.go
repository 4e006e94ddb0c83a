// Package cli wires the scan and chat commands to the command line.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments. SIGINT and SIGTERM cancel
// the command context.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.Command().ExecuteContext(ctx)
}

// Command builds the root command and its subcommands.
func (c CLI) Command() *cobra.Command {
	var global globalFlags

	root := &cobra.Command{
		Use:   "scanlog",
		Short: "Filesystem metadata scans and chat log keyword tallies",
		Long: heredoc.Doc(`
			scanlog bundles two standalone utilities.

			  scan   walks a directory tree, collects per-file metadata, prints
			         summary statistics and saves the largest files as JSON.
			  chat   extracts one sender's messages from a chat export and counts
			         the word that follows a keyword.

			Settings can also come from a YAML file (--config, or .scanlog.yaml in
			the home or working directory) with "scan:" and "chat:" sections, and
			from SCANLOG_<SECTION>_<FLAG> environment variables.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVarP(&global.config, "config", "c", "", "Config file (default: .scanlog.yaml in $HOME or the working directory)")
	flags.BoolVar(&global.debug, "debug", false, "Enable debug logging")

	root.AddCommand(newScanCommand(&global), newChatCommand(&global))

	return root
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	config string
	debug  bool
}
