package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/idelchi/scanlog/internal/chatlog"
	"github.com/idelchi/scanlog/internal/store"
)

func newChatCommand(global *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Extract one sender's messages from a chat export",
		Long: heredoc.Doc(`
			Reads a chat export with one message per line:

			  [DD/MM/YYYY, HH:MM:SS] Sender: Message

			keeps the messages of --sender, saves them as JSON to --output and
			counts the word that follows --keyword in each of them (first
			occurrence per message). Lines in any other shape are ignored.

			A missing or unreadable input file is reported and treated as empty.
		`),
		Args: cobra.NoArgs,
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringP("input", "i", DefaultChatInput, "Chat export to read")
	flags.StringP("output", "o", DefaultChatOutput, "JSON file receiving the kept messages")
	flags.StringP("sender", "s", DefaultSender, "Sender whose messages are kept (case sensitive)")
	flags.StringP("keyword", "k", DefaultKeyword, "Word whose follower is counted")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		v, err := loadConfig(cmd.Flags(), "chat", global.config)
		if err != nil {
			return err
		}

		cfg := chatConfigFrom(v)
		if err := cfg.Validate(); err != nil {
			return err
		}

		return runChat(cfg, newLogger(cmd.ErrOrStderr(), global.debug), cmd.OutOrStdout())
	}

	return cmd
}

// chatReport is everything the chat command prints.
type chatReport struct {
	Sender  string
	Keyword string
	Output  string
	Entries []chatlog.Entry
	Matches []chatlog.Match
	Counts  *chatlog.FollowerCount
}

// runChat extracts, saves and reports. Input problems are printed and the
// run continues with no messages.
func runChat(cfg ChatConfig, log logrus.FieldLogger, stdout io.Writer) error {
	follower, err := chatlog.NewFollower(cfg.Keyword)
	if err != nil {
		return err
	}

	entries, err := chatlog.ExtractFile(cfg.Input, cfg.Sender)
	if err != nil {
		log.WithError(err).WithField("path", cfg.Input).Debug("chat log unavailable")

		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stdout, "Error: File '%s' not found.\n", cfg.Input)
		} else {
			fmt.Fprintf(stdout, "Error reading file: %v\n", err)
		}

		entries = nil
	}

	matches, counts := chatlog.CountFollowers(entries, follower)

	report := chatReport{
		Sender:  cfg.Sender,
		Keyword: follower.Keyword(),
		Entries: entries,
		Matches: matches,
		Counts:  counts,
	}

	if len(entries) > 0 {
		if err := store.WriteJSON(cfg.Output, entries); err != nil {
			return err
		}

		report.Output = cfg.Output

		log.WithFields(logrus.Fields{"path": cfg.Output, "messages": len(entries)}).Debug("messages written")
	}

	return PrintChatReport(report, stdout)
}
