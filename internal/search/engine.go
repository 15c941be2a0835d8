// Package search implements sift's line search: whole-file buffered,
// single pattern, plain substring containment.
package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/pders01/sift/internal/config"
)

// ReadError reports that the search target could not be loaded. The whole
// read is all-or-nothing; no partial result accompanies it.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Search returns the lines of content containing pattern as a contiguous
// substring, byte for byte, in original order.
func Search(pattern, content string) []string {
	return filterLines(content, NewMatcher(pattern, true))
}

// SearchCaseInsensitive returns the lines of content whose lower-cased
// form contains the lower-cased pattern, in original order. Its results
// are a superset of Search for the same inputs.
func SearchCaseInsensitive(pattern, content string) []string {
	return filterLines(content, NewMatcher(pattern, false))
}

func filterLines(content string, m Matcher) []string {
	var results []string
	for _, line := range SplitLines(content) {
		if m.Match(line) {
			results = append(results, line)
		}
	}
	return results
}

// SplitLines partitions content into lines. Both \n and \r\n terminate a
// line; the terminator is removed and nothing else is trimmed. A trailing
// terminator does not produce an empty final line. A \r without a
// following \n is ordinary content and stays in the line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	terminated := len(lines) - 1
	if lines[terminated] == "" {
		lines = lines[:terminated]
		terminated = len(lines)
	}
	for i := 0; i < terminated; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// Engine executes resolved search requests against the filesystem.
type Engine struct{}

// NewEngine creates a new search engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Run loads the request's target file and returns its matching lines in
// file order. An empty result is not an error. Failure to read the file
// returns a *ReadError; nothing has been emitted at that point.
func (e *Engine) Run(req config.Request) ([]string, error) {
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, &ReadError{Path: req.Path, Err: err}
	}

	content := string(data)
	if req.CaseSensitive {
		return Search(req.Pattern, content), nil
	}
	return SearchCaseInsensitive(req.Pattern, content), nil
}
