package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pders01/sift/internal/history"
	"github.com/pders01/sift/internal/validation"
)

var (
	historyLimit int
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded searches, newest first",
	Long: `List searches recorded with --save (or history.enabled in the config).
Nothing is recorded unless you opt in. --clear deletes everything.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (0 uses the configured limit)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "delete all recorded searches")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if historyClear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	limit := historyLimit
	if limit <= 0 {
		limit = cfg.History.Limit
	}

	entries, err := store.Recent(limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recorded searches.")
		return nil
	}

	for _, e := range entries {
		mode := ""
		if !e.CaseSensitive {
			mode = " (ignore-case)"
		}
		fmt.Fprintf(out, "%s  %q in %s%s: %d match(es)\n",
			e.ExecutedAt.Format("2006-01-02 15:04"), e.Pattern, e.Path, mode, e.Matches)
	}
	return nil
}

func openHistoryStore() (*history.Store, error) {
	path, err := validation.ValidateStatePath(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history path: %w", err)
	}
	if _, err := validation.EnsureStateDir(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("history directory: %w", err)
	}
	return history.NewStore(path)
}
