package search

import "github.com/pders01/sift/internal/config"

// Searcher defines the minimal search API used by the CLI.
type Searcher interface {
	Run(req config.Request) ([]string, error)
}
