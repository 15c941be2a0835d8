package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/debuglog"
	"github.com/pders01/sift/internal/index"
	"github.com/pders01/sift/internal/search"
	"github.com/pders01/sift/internal/validation"
)

var lookupLimit int

var indexCmd = &cobra.Command{
	Use:   "index -- <path>",
	Short: "Add a file's lines to the persistent index",
	Long: `Index every line of a file for later lookup. Re-indexing a file replaces
its previous entries.

The "--" keeps the path from reading as a plain two-token search.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

var lookupCmd = &cobra.Command{
	Use:   "lookup -- <term>",
	Short: "Query the persistent index",
	Long: `Query indexed lines. Unlike the plain search, lookup is tokenized
full-text matching with relevance ranking, not substring containment.

The "--" keeps the term from reading as a plain two-token search.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().IntVarP(&lookupLimit, "limit", "n", 20, "maximum number of hits")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(lookupCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return &search.ReadError{Path: path, Err: err}
	}
	lines := search.SplitLines(string(data))

	ix, err := openIndex()
	if err != nil {
		return err
	}
	defer ix.Close()

	if err := ix.IndexFile(path, lines); err != nil {
		return fmt.Errorf("indexing %s: %w", path, err)
	}

	total, _ := ix.DocCount()
	debuglog.Infof("indexed %d lines from %s", len(lines), path)
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d lines from %s (%d total).\n", len(lines), path, total)
	return nil
}

func runLookup(cmd *cobra.Command, args []string) error {
	ix, err := openIndex()
	if err != nil {
		return err
	}
	defer ix.Close()

	hits, err := ix.Lookup(args[0], lookupLimit)
	if err != nil {
		return fmt.Errorf("looking up %q: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if len(hits) == 0 {
		fmt.Fprintln(out, "No hits.")
		return nil
	}
	for _, h := range hits {
		fmt.Fprintf(out, "%s:%d: %s\n", h.Path, h.Num, h.Line)
	}
	return nil
}

func openIndex() (*index.Index, error) {
	dir, err := validation.ValidateStatePath(cfg.Index.Dir)
	if err != nil {
		return nil, fmt.Errorf("index dir: %w", err)
	}
	return index.Open(dir)
}
