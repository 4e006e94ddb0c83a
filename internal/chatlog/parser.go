package chatlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when the input is not UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

//nolint:gochecknoglobals // Compiled once
var linePattern = regexp.MustCompile(strings.NewReplacer(`\d`, digitClass).Replace(
	`^\[(\d{2}/\d{2}/\d{4}, \d{2}:\d{2}:\d{2})\] ([^:]+): (.+)`,
))

// Parse converts a single line into an Entry. The line is trimmed first;
// blank and non-matching lines return false.
func Parse(line string) (Entry, bool) {
	line = trimSpace(line)
	if line == "" {
		return Entry{}, false
	}

	matches := linePattern.FindStringSubmatch(line)
	if matches == nil {
		return Entry{}, false
	}

	return Entry{
		Timestamp: matches[1],
		Sender:    matches[2],
		Body:      matches[3],
	}, true
}

// Extract reads r line by line and returns the entries sent by sender, in
// input order. Lines have no length limit.
func Extract(r io.Reader, sender string) ([]Entry, error) {
	reader := bufio.NewReader(r)
	entries := make([]Entry, 0)

	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')

		if line != "" {
			if !utf8.ValidString(line) {
				return nil, fmt.Errorf("line %d: %w", lineNo, ErrInvalidUTF8)
			}

			if entry, ok := Parse(line); ok && entry.From(sender) {
				entries = append(entries, entry)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", lineNo, err)
		}
	}

	return entries, nil
}

// ExtractFile opens path and extracts the entries sent by sender.
// A missing file yields an error wrapping fs.ErrNotExist.
func ExtractFile(path, sender string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chat log: %w", err)
	}
	defer f.Close()

	entries, err := Extract(f, sender)
	if err != nil {
		return nil, fmt.Errorf("reading chat log %q: %w", path, err)
	}

	return entries, nil
}
