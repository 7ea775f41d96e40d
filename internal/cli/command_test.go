package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgaevDavid/filescan/internal/filestat"
	"github.com/AgaevDavid/filescan/internal/search"
)

func fixture(t *testing.T, files map[string]int) string {
	t.Helper()

	dir := t.TempDir()
	for name, size := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Repeat("x", size)), 0o644))
	}

	return dir
}

// execute runs the root command and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := New("test").Command()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), err
}

func TestCommand_JSON(t *testing.T) {
	dir := fixture(t, map[string]int{"a.txt": 10, "b.log": 5, "c.txt": 20})

	out, err := execute(t, "", "-p", "*.txt", "-o", "json", dir)
	require.NoError(t, err)

	var stats filestat.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &stats))

	assert.Equal(t, 2, stats.FileCount)
	assert.EqualValues(t, 30, stats.TotalBytes)
	assert.InDelta(t, 15.0, stats.AverageBytes, 1e-9)
	require.NotNil(t, stats.Largest)
	assert.Equal(t, "c.txt", stats.Largest.Name)
	assert.Equal(t, "*.txt", stats.Pattern)
	assert.Equal(t, filepath.Clean(dir), stats.Directory)
	assert.False(t, stats.LimitReached)
}

func TestCommand_MaxFiles(t *testing.T) {
	dir := fixture(t, map[string]int{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5})

	out, err := execute(t, "", "-n", "2", "-o", "json", dir)
	require.NoError(t, err)

	var stats filestat.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &stats))

	assert.Equal(t, 2, stats.FileCount)
	assert.True(t, stats.LimitReached)
	assert.Equal(t, 2, stats.MaxFiles)
}

func TestCommand_Table(t *testing.T) {
	dir := fixture(t, map[string]int{
		"a": 100, "b": 700, "c": 300, "d": 600, "e": 200, "f": 500, "g": 400,
	})

	out, err := execute(t, "", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Largest file:")
	assert.Contains(t, out, filepath.Join(dir, "b"))
	assert.Contains(t, out, "Top 5 files:")
	assert.Contains(t, out, "1) 'b'")
	assert.Contains(t, out, "5) 'c'")
	assert.NotContains(t, out, "'a'")
	assert.Regexp(t, `Total files:\s+7\n`, out)
	assert.Contains(t, out, "2,800 bytes")
	assert.Regexp(t, `File limit:\s+unlimited`, out)
}

func TestCommand_NoMatches(t *testing.T) {
	dir := fixture(t, map[string]int{"a.txt": 1})

	out, err := execute(t, "", "-p", "*.go", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No files matched the search criteria.")
}

func TestCommand_Errors(t *testing.T) {
	dir := fixture(t, map[string]int{"a.txt": 1})

	testCases := []struct {
		name string
		args []string
		kind string
	}{
		{name: "missing directory", args: []string{filepath.Join(dir, "missing")}, kind: "DirectoryNotFound"},
		{name: "file as directory", args: []string{filepath.Join(dir, "a.txt")}, kind: "NotADirectory"},
		{name: "bad pattern", args: []string{"-p", "[", dir}, kind: "InvalidArgument"},
		{name: "negative limit", args: []string{"-n", "-1", dir}, kind: "InvalidArgument"},
		{name: "unknown output", args: []string{"-o", "xml", dir}, kind: "InvalidArgument"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, "", tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.kind, Kind(err))
		})
	}
}

func TestCommand_ErrorMentionsPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := execute(t, "", missing)
	require.ErrorIs(t, err, search.ErrDirectoryNotFound)
	assert.Contains(t, err.Error(), missing)
}

func TestCommand_ConfigFile(t *testing.T) {
	dir := fixture(t, map[string]int{"a.log": 3, "b.log": 9, "c.txt": 50})

	config := filepath.Join(t.TempDir(), "filescan.yaml")
	require.NoError(t, os.WriteFile(config, []byte("pattern: \"*.log\"\noutput: json\n"), 0o644))

	out, err := execute(t, "", "--config", config, dir)
	require.NoError(t, err)

	var stats filestat.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &stats))

	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, "b.log", stats.Largest.Name)
}

func TestCommand_FlagOverridesEnvironment(t *testing.T) {
	dir := fixture(t, map[string]int{"a.log": 3, "c.txt": 50})

	t.Setenv("FILESCAN_PATTERN", "*.txt")
	t.Setenv("FILESCAN_OUTPUT", "json")

	out, err := execute(t, "", dir)
	require.NoError(t, err)

	var stats filestat.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, "c.txt", stats.Largest.Name)

	out, err = execute(t, "", "-p", "*.log", dir)
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, "a.log", stats.Largest.Name)
}

func TestCommand_Interactive(t *testing.T) {
	dir := fixture(t, map[string]int{"a.txt": 10, "b.txt": 40, "c.log": 90})
	missing := filepath.Join(dir, "missing")

	stdin := strings.Join([]string{missing, "y", dir, "*.txt", "1"}, "\n") + "\n"

	out, err := execute(t, stdin, "-i", "-o", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "does not exist")

	// The JSON document follows the prompts.
	start := strings.Index(out, "{")
	require.GreaterOrEqual(t, start, 0)

	var stats filestat.Summary
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &stats))

	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, "*.txt", stats.Pattern)
	assert.Equal(t, 1, stats.MaxFiles)
}

func TestCommand_InteractiveCancelled(t *testing.T) {
	out, err := execute(t, "\n", "-i")
	require.NoError(t, err)
	assert.Contains(t, out, "Operation cancelled.")
}
