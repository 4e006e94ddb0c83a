package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/scanlog/internal/chatlog"
	"github.com/idelchi/scanlog/internal/fsscan"
)

// execute runs the root command in isolation from the caller's home directory.
func execute(ctx context.Context, t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cmd := New("1.2.3").Command()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}

func write(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const chatExport = `[01/02/2024, 10:15:30] Jakob: Hey, how are you doing?
[01/02/2024, 10:16:00] Anna: fine, and you know what?
[01/02/2024, 10:17:00] Jakob: did you see <this> & that
second line of the same message
[01/02/2024, 10:18:00] Jakob: nothing to count
[01/02/2024, 10:19:00] Anna: I think you should
`

func TestVersion(t *testing.T) {
	stdout, _, err := execute(context.Background(), t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", stdout)
}

func TestChat(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "_chat.txt")
	output := filepath.Join(dir, "out", "messages.json")
	write(t, input, chatExport)

	stdout, _, err := execute(context.Background(), t, "chat", "--input", input, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Found 3 message(s) from Jakob")
	assert.Contains(t, stdout, "Results saved to '"+output+"'")
	assert.Contains(t, stdout, "→ Found 'you' followed by: doing")
	assert.Contains(t, stdout, "→ Found 'you' followed by: see")
	assert.Contains(t, stdout, "Words following 'you':")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<this> & that")

	var got []chatlog.Entry
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 3)
	assert.Equal(t, chatlog.Entry{
		Timestamp: "01/02/2024, 10:15:30",
		Sender:    "Jakob",
		Body:      "Hey, how are you doing?",
	}, got[0])
}

func TestChat_MissingInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "missing.txt")
	output := filepath.Join(dir, "messages.json")

	stdout, _, err := execute(context.Background(), t, "chat", "-i", input, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Error: File '"+input+"' not found.")
	assert.Contains(t, stdout, "No messages from Jakob found.")
	assert.Contains(t, stdout, "(none)")
	assert.NoFileExists(t, output)
}

func TestChat_UnreadableInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "messages.json")

	stdout, _, err := execute(context.Background(), t, "chat", "-i", dir, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Error reading file:")
	assert.NoFileExists(t, output)
}

func TestChat_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "_chat.txt")
	output := filepath.Join(dir, "anna.json")
	config := filepath.Join(dir, "scanlog.yaml")
	write(t, input, chatExport)
	write(t, config, "chat:\n  sender: Anna\n  keyword: I\n  input: "+input+"\n")

	stdout, _, err := execute(context.Background(), t, "--config", config, "chat", "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Found 2 message(s) from Anna")
	assert.Contains(t, stdout, "→ Found 'I' followed by: think")
	assert.FileExists(t, output)
}

func TestChat_EnvironmentOverridesDefault(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "_chat.txt")
	write(t, input, chatExport)

	t.Setenv("SCANLOG_CHAT_SENDER", "Anna")

	stdout, _, err := execute(context.Background(), t, "chat", "-i", input, "-o", filepath.Join(dir, "o.json"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 2 message(s) from Anna")
}

func TestChat_MissingExplicitConfig(t *testing.T) {
	_, _, err := execute(context.Background(), t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "chat")
	require.ErrorContains(t, err, "reading config")
}

func scanTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	write(t, filepath.Join(root, "a.txt"), strings.Repeat("a", 30))
	write(t, filepath.Join(root, "src", "b.go"), strings.Repeat("b", 20))
	write(t, filepath.Join(root, "src", "c.go"), strings.Repeat("c", 10))
	write(t, filepath.Join(root, "skip", "big.bin"), strings.Repeat("x", 100))

	return root
}

func TestScan(t *testing.T) {
	root := scanTree(t)
	output := filepath.Join(t.TempDir(), "sample.json")

	stdout, _, err := execute(context.Background(), t, "scan",
		"--root", root,
		"--exclude", filepath.Join(root, "skip"),
		"--output", output,
		"--sample", "2",
		"--top", "2",
	)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Scanning filesystem...")
	assert.Contains(t, stdout, "Total files found:")
	assert.Contains(t, stdout, "0.00 GiB")
	assert.Contains(t, stdout, "Top 2 file extensions:")
	assert.Contains(t, stdout, "1) .go:")
	assert.Contains(t, stdout, "2) .txt:")
	assert.Contains(t, stdout, "Full scan contains 3 files")

	raw, err := os.ReadFile(output)
	require.NoError(t, err)

	var sample []fsscan.Record
	require.NoError(t, json.Unmarshal(raw, &sample))
	require.Len(t, sample, 2)
	assert.Equal(t, filepath.Join(root, "a.txt"), sample[0].Path)
	assert.Equal(t, filepath.Join(root, "src", "b.go"), sample[1].Path)
	assert.Equal(t, int64(30), sample[0].Size)
}

func TestScan_JSONFormat(t *testing.T) {
	root := scanTree(t)
	output := filepath.Join(t.TempDir(), "sample.json")

	stdout, stderr, err := execute(context.Background(), t, "scan",
		"--root", root, "--output", output, "--format", "json")
	require.NoError(t, err)

	var summary fsscan.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 4, summary.FileCount)
	assert.Equal(t, int64(160), summary.TotalBytes)
	assert.Contains(t, stderr, "Scanning filesystem...")
}

func TestScan_Interrupted(t *testing.T) {
	root := scanTree(t)
	output := filepath.Join(t.TempDir(), "sample.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stdout, _, err := execute(ctx, t, "scan", "--root", root, "--output", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Scan interrupted by user.")
	assert.Contains(t, stdout, "Files scanned so far:")
	assert.NotContains(t, stdout, "Total files found:")
	assert.NoFileExists(t, output)
}

func TestScan_Database(t *testing.T) {
	root := scanTree(t)
	dir := t.TempDir()

	stdout, _, err := execute(context.Background(), t, "scan",
		"--root", root,
		"--output", filepath.Join(dir, "sample.json"),
		"--db", filepath.Join(dir, "scan.db"),
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "with 4 files")
}

func TestScan_InvalidSettings(t *testing.T) {
	root := t.TempDir()

	for _, args := range [][]string{
		{"--format", "xml"},
		{"--sample", "-1"},
		{"--top", "-3"},
		{"--workers", "0"},
	} {
		_, _, err := execute(context.Background(), t, append([]string{"scan", "--root", root}, args...)...)
		require.Error(t, err, "args %v", args)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	_, _, err := execute(context.Background(), t, "scan",
		"--root", filepath.Join(t.TempDir(), "missing"),
		"--output", filepath.Join(t.TempDir(), "o.json"),
	)
	require.ErrorContains(t, err, "accessing path")
}

func TestScan_ExcludesFromEnvironment(t *testing.T) {
	root := scanTree(t)

	t.Setenv("SCANLOG_SCAN_EXCLUDE", filepath.Join(root, "skip")+","+filepath.Join(root, "src"))

	stdout, _, err := execute(context.Background(), t, "scan",
		"--root", root, "--output", filepath.Join(t.TempDir(), "sample.json"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Full scan contains 1 files")
}
