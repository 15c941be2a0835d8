package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/sift/internal/config"
	"github.com/pders01/sift/internal/search"
)

// execute runs args through the same dispatch path as the binary and
// captures the output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Each execute models a fresh process invocation, so flag state must
	// not leak from a previous call within the same test.
	saveHistory = false
	historyClear = false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		saveHistory = false
		historyClear = false
	})

	err := dispatch(args)
	return buf.String(), err
}

// writeTestConfig points history and index state into a temp dir so tests
// never touch the real home directory.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.toml")
	content := fmt.Sprintf("[history]\npath = %q\n\n[index]\ndir = %q\n",
		filepath.Join(dir, "history.db"), filepath.Join(dir, "index.bleve"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

	return cfgFile
}

func writePoem(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "poem.txt")
	content := "Rust:\nsafe, fast, productive.\nPick three.\nTrust me.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRootSearch(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	out, err := execute(t, "--config", cfgFile, "duct", poem)
	require.NoError(t, err)
	assert.Equal(t, "safe, fast, productive.\n", out)
}

func TestRootSearchNoMatchesStillSucceeds(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	out, err := execute(t, "--config", cfgFile, "zzz", poem)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRootSearchIgnoreCaseEnv(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	// presence alone enables ignore-case, even with an empty value
	t.Setenv(config.IgnoreCaseVar, "")

	out, err := execute(t, "--config", cfgFile, "rUsT", poem)
	require.NoError(t, err)
	assert.Equal(t, "Rust:\nTrust me.\n", out)
}

func TestRootWrongArgumentCount(t *testing.T) {
	cfgFile := writeTestConfig(t)

	out, err := execute(t, "--config", cfgFile, "lonely-pattern")
	require.Error(t, err)

	var usageErr *config.UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, usageErr.Usage, "<pattern>")
	assert.Contains(t, usageErr.Usage, "<path>")
	assert.Empty(t, out, "no lines should be printed on a usage failure")
}

type stubSearcher struct {
	called bool
}

func (s *stubSearcher) Run(config.Request) ([]string, error) {
	s.called = true
	return nil, nil
}

func TestRootUsageFailureSkipsEngine(t *testing.T) {
	cfgFile := writeTestConfig(t)

	stub := &stubSearcher{}
	orig := searcher
	searcher = stub
	t.Cleanup(func() { searcher = orig })

	_, err := execute(t, "--config", cfgFile, "just-one-token")
	require.Error(t, err)
	assert.False(t, stub.called, "engine must not run on a usage failure")
}

func TestRootMissingFile(t *testing.T) {
	cfgFile := writeTestConfig(t)
	missing := filepath.Join(t.TempDir(), "nope.txt")

	out, err := execute(t, "--config", cfgFile, "pattern", missing)
	require.Error(t, err)

	var readErr *search.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, missing, readErr.Path)
	assert.Empty(t, out, "no partial output on an unreadable file")
}

func TestRootSaveThenHistory(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	_, err := execute(t, "--config", cfgFile, "--save", "duct", poem)
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgFile, "history")
	require.NoError(t, err)
	assert.Contains(t, out, `"duct"`)
	assert.Contains(t, out, "1 match(es)")
}

func TestHistoryEmpty(t *testing.T) {
	cfgFile := writeTestConfig(t)

	out, err := execute(t, "--config", cfgFile, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded searches.")
}

func TestHistoryClear(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	_, err := execute(t, "--config", cfgFile, "--save", "three", poem)
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgFile, "history", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared.")

	out, err = execute(t, "--config", cfgFile, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No recorded searches.")
}

func TestIndexThenLookup(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	out, err := execute(t, "--config", cfgFile, "index", "--", poem)
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 4 lines")

	out, err = execute(t, "--config", cfgFile, "lookup", "--", "productive")
	require.NoError(t, err)
	assert.Contains(t, out, poem+":2: safe, fast, productive.")
}

func TestLookupNoHits(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	_, err := execute(t, "--config", cfgFile, "index", "--", poem)
	require.NoError(t, err)

	out, err := execute(t, "--config", cfgFile, "lookup", "--", "unfindable")
	require.NoError(t, err)
	assert.Contains(t, out, "No hits.")
}

func TestVersionCommand(t *testing.T) {
	cfgFile := writeTestConfig(t)

	out, err := execute(t, "--config", cfgFile, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sift dev")
}

// A pattern spelled like a subcommand name is still a pattern when the
// invocation has the two-token search shape.
func TestSearchPatternNamedLikeSubcommand(t *testing.T) {
	cfgFile := writeTestConfig(t)
	poem := writePoem(t)

	for _, pattern := range []string{"version", "history", "index", "lookup", "tui", "help"} {
		out, err := execute(t, "--config", cfgFile, pattern, poem)
		require.NoError(t, err, "pattern %q", pattern)
		assert.Empty(t, out, "pattern %q must search the file, not dispatch", pattern)
	}
}

func TestSearchPatternNamedVersionWithMatches(t *testing.T) {
	cfgFile := writeTestConfig(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("version control\nplain text\n"), 0o644))

	out, err := execute(t, "--config", cfgFile, "version", path)
	require.NoError(t, err)
	assert.Equal(t, "version control\n", out)
}

func TestRouteArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "bare pattern and path",
			args: []string{"duct", "poem.txt"},
			want: []string{"--", "duct", "poem.txt"},
		},
		{
			name: "pattern equal to a subcommand name",
			args: []string{"version", "poem.txt"},
			want: []string{"--", "version", "poem.txt"},
		},
		{
			name: "value flag before the payload",
			args: []string{"--config", "sift.toml", "version", "poem.txt"},
			want: []string{"--config", "sift.toml", "--", "version", "poem.txt"},
		},
		{
			name: "inline flag value",
			args: []string{"--config=sift.toml", "duct", "poem.txt"},
			want: []string{"--config=sift.toml", "--", "duct", "poem.txt"},
		},
		{
			name: "bool flag",
			args: []string{"--save", "duct", "poem.txt"},
			want: []string{"--save", "--", "duct", "poem.txt"},
		},
		{
			name: "single token untouched",
			args: []string{"history"},
			want: []string{"history"},
		},
		{
			name: "three tokens untouched",
			args: []string{"a", "b", "c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "explicit separator untouched",
			args: []string{"index", "--", "poem.txt"},
			want: []string{"index", "--", "poem.txt"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routeArgs(tt.args))
		})
	}
}
